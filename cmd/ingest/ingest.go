package main

import (
	"github.com/DRSN-tech/search-backend/internal/app"
)

func main() {
	app.RunIngest()
}
