package catalog

import (
	"strings"
	"unicode"
)

// Колонки description и images приходят из выгрузки в виде питоноподобных
// литералов: "[{'Product Details': '...'}, ...]" и "['url1', 'url2']".
// Разбор построен как упорядоченная цепочка стратегий: строгий разбор литерала,
// затем более свободные варианты, в конце — исходная строка как есть.
// Цепочка никогда не возвращает ошибку.

// flattenDescription сплющивает структурированное описание в плоский текст.
// Значения секций соединяются через ". ", ключи секций отбрасываются.
func flattenDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if items, ok := parseLiteral(trimmed); ok {
		parts := collectLeafText(items)
		if len(parts) > 0 {
			return strings.Join(parts, ". ")
		}
	}

	// Фолбэк: данные не распарсились — возвращаем сырую строку
	return trimmed
}

// parseImageList извлекает список ссылок на изображения.
// Поддерживает литерал списка строк и одиночную ссылку без обёртки.
func parseImageList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if val, ok := parseLiteral(trimmed); ok {
		if list, ok := val.(literalList); ok {
			urls := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					urls = append(urls, strings.TrimSpace(s))
				}
			}
			if len(urls) > 0 {
				return urls
			}
		}
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return []string{trimmed}
	}

	return nil
}

// collectLeafText собирает листовые текстовые значения в порядке следования.
func collectLeafText(val literalValue) []string {
	switch v := val.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{strings.TrimSpace(v)}
	case literalList:
		var parts []string
		for _, item := range v {
			parts = append(parts, collectLeafText(item)...)
		}
		return parts
	case *literalDict:
		var parts []string
		for _, item := range v.vals {
			parts = append(parts, collectLeafText(item)...)
		}
		return parts
	default:
		return nil
	}
}

// literalValue — результат разбора литерала: string, literalList или *literalDict.
type literalValue any

type literalList []literalValue

// literalDict сохраняет порядок вставки ключей, в отличие от map.
type literalDict struct {
	keys []string
	vals []literalValue
}

// parseLiteral разбирает питоноподобный литерал (списки, словари, строки
// в одинарных или двойных кавычках). Возвращает false при любом отклонении
// от грамматики: вызывающая сторона переходит к следующей стратегии.
func parseLiteral(s string) (literalValue, bool) {
	p := &literalParser{input: []rune(s)}
	p.skipSpaces()

	val, ok := p.parseValue()
	if !ok {
		return nil, false
	}

	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, false
	}

	return val, true
}

type literalParser struct {
	input []rune
	pos   int
}

func (p *literalParser) parseValue() (literalValue, bool) {
	if p.pos >= len(p.input) {
		return nil, false
	}

	switch p.input[p.pos] {
	case '[':
		return p.parseList()
	case '{':
		return p.parseDict()
	case '\'', '"':
		return p.parseString()
	default:
		return p.parseBareToken()
	}
}

func (p *literalParser) parseList() (literalValue, bool) {
	p.pos++ // '['
	list := literalList{}

	p.skipSpaces()
	for p.pos < len(p.input) && p.input[p.pos] != ']' {
		val, ok := p.parseValue()
		if !ok {
			return nil, false
		}
		list = append(list, val)

		p.skipSpaces()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
			p.skipSpaces()
		}
	}

	if p.pos >= len(p.input) {
		return nil, false
	}
	p.pos++ // ']'

	return list, true
}

func (p *literalParser) parseDict() (literalValue, bool) {
	p.pos++ // '{'
	dict := &literalDict{}

	p.skipSpaces()
	for p.pos < len(p.input) && p.input[p.pos] != '}' {
		key, ok := p.parseValue()
		if !ok {
			return nil, false
		}
		keyStr, ok := key.(string)
		if !ok {
			return nil, false
		}

		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ':' {
			return nil, false
		}
		p.pos++
		p.skipSpaces()

		val, ok := p.parseValue()
		if !ok {
			return nil, false
		}

		dict.keys = append(dict.keys, keyStr)
		dict.vals = append(dict.vals, val)

		p.skipSpaces()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
			p.skipSpaces()
		}
	}

	if p.pos >= len(p.input) {
		return nil, false
	}
	p.pos++ // '}'

	return dict, true
}

func (p *literalParser) parseString() (literalValue, bool) {
	quote := p.input[p.pos]
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case ch == '\\' && p.pos+1 < len(p.input):
			// Экранирование вида \' или \" внутри литерала
			sb.WriteRune(p.input[p.pos+1])
			p.pos += 2
		case ch == quote:
			p.pos++
			return sb.String(), true
		default:
			sb.WriteRune(ch)
			p.pos++
		}
	}

	return nil, false // незакрытая кавычка
}

// parseBareToken читает значение без кавычек (числа, None, True) как строку.
func (p *literalParser) parseBareToken() (literalValue, bool) {
	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == ',' || ch == ']' || ch == '}' || ch == ':' {
			break
		}
		p.pos++
	}

	token := strings.TrimSpace(string(p.input[start:p.pos]))
	if token == "" {
		return nil, false
	}

	return token, true
}

func (p *literalParser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}
