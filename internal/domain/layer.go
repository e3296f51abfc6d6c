package domain

import (
	"fmt"
	"strings"
)

// LayerKind определяет, как слой участвует в анализе
type LayerKind int

const (
	// KindUnknown - категория не участвует в анализе, но попадает в результат пустым списком
	KindUnknown LayerKind = iota
	// KindArea - площадной слой, проверяется на пересечение
	KindArea
	// KindPoint - точечный слой, проверяется на близость
	KindPoint
)

func (k LayerKind) String() string {
	switch k {
	case KindArea:
		return "area"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// LayerRef - ссылка на выбранный слой (region, category, file)
type LayerRef struct {
	Region   string `json:"region" validate:"required"`
	Category string `json:"category" validate:"required"`
	Name     string `json:"name"`
	File     string `json:"file" validate:"required"`
}

func (r LayerRef) String() string {
	return r.Region + "/" + r.Category + "/" + r.File
}

// LayerEntry - элемент инвентаря слоев
type LayerEntry struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Exists bool   `json:"exists"`
}

// LayerInventory - region -> category -> слои
type LayerInventory map[string]map[string][]LayerEntry

// Count возвращает общее количество слоев в инвентаре
func (inv LayerInventory) Count() int {
	n := 0
	for _, categories := range inv {
		for _, entries := range categories {
			n += len(entries)
		}
	}
	return n
}

// Категории из исходной конфигурации слоев ландшафтного плана
const (
	CategoryLandscapeStructure = "경관구조"
	CategoryFocusArea          = "중점경관관리구역"
	CategoryLandscapeDistrict  = "경관지구"
	CategoryLandscapeHub       = "경관거점"
	CategoryViewpoint2040      = "2040조망점"
)

// CategoryCatalog классифицирует категории и знает ключи свойств с названием объекта
type CategoryCatalog struct {
	kinds           map[string]LayerKind
	nameKeys        map[string]string
	genericNameKeys []string
}

// NewCategoryCatalog создает каталог категорий
func NewCategoryCatalog(area, point []string, nameKeys map[string]string, genericNameKeys []string) *CategoryCatalog {
	c := &CategoryCatalog{
		kinds:           make(map[string]LayerKind, len(area)+len(point)),
		nameKeys:        make(map[string]string, len(nameKeys)),
		genericNameKeys: genericNameKeys,
	}
	for _, a := range area {
		c.kinds[a] = KindArea
	}
	for _, p := range point {
		c.kinds[p] = KindPoint
	}
	for k, v := range nameKeys {
		c.nameKeys[k] = v
	}
	return c
}

// DefaultCategoryCatalog - каталог по умолчанию
func DefaultCategoryCatalog() *CategoryCatalog {
	return NewCategoryCatalog(
		[]string{CategoryLandscapeStructure, CategoryFocusArea, CategoryLandscapeDistrict},
		[]string{CategoryLandscapeHub, CategoryViewpoint2040},
		map[string]string{
			CategoryLandscapeHub:  "거점명",
			CategoryViewpoint2040: "명칭",
		},
		[]string{"name", "NAME"},
	)
}

// Kind возвращает тип категории
func (c *CategoryCatalog) Kind(category string) LayerKind {
	return c.kinds[category]
}

// DisplayName выбирает название точки: сначала ключ категории, затем общие ключи, затем fallback
func (c *CategoryCatalog) DisplayName(category string, props map[string]interface{}, fallback string) string {
	if props == nil {
		return fallback
	}
	if key, ok := c.nameKeys[category]; ok {
		if v := propertyString(props[key]); v != "" {
			return v
		}
	}
	for _, key := range c.genericNameKeys {
		if v := propertyString(props[key]); v != "" {
			return v
		}
	}
	return fallback
}

func propertyString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return fmt.Sprint(val)
	}
}

// Clone - глубокая копия инвентаря
func (inv LayerInventory) Clone() LayerInventory {
	out := make(LayerInventory, len(inv))
	for region, categories := range inv {
		cats := make(map[string][]LayerEntry, len(categories))
		for category, entries := range categories {
			cats[category] = append([]LayerEntry(nil), entries...)
		}
		out[region] = cats
	}
	return out
}
