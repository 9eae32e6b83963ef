package main

import (
	"github.com/DRSN-tech/search-backend/internal/app"
)

//	@title			Catalog Search API
//	@version		1.0
//	@description	Мультимодальный поиск по каталогу товаров: текстовые и визуальные запросы.

//	@host		localhost:8000
//	@BasePath	/
func main() {
	app.Run()
}
