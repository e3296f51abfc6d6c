package domain

import (
	"strings"

	"github.com/paulmach/orb"
)

// Источники геокодирования
const (
	SourceVWorld     = "vworld"
	SourceKakao      = "kakao"
	SourceKakaoPlace = "kakao_place"
	SourceCoordinate = "coordinate"
)

// GeocodeResult - результат геокодирования одним провайдером
type GeocodeResult struct {
	Coordinate Coordinate
	Address    string
	ParcelID   string // PNU, пусто если провайдер не является источником кадастра
	Source     string
}

// HasParcelID сообщает, доступен ли точный поиск границы по PNU
func (r *GeocodeResult) HasParcelID() bool {
	return r != nil && r.ParcelID != ""
}

// ResolvedLocation - итог резолвинга: адрес, участок и точка анализа
type ResolvedLocation struct {
	Coordinate    Coordinate
	Address       string
	ParcelID      string
	Boundary      orb.Geometry // nil если граница участка не найдена
	AnalysisPoint Coordinate
	Region        string
	Source        string
}

// Регионы, для которых есть слои ландшафтного плана
const (
	RegionGwangju     = "광주광역시"
	RegionJeollanamdo = "전라남도"
	RegionJeollabukdo = "전라북도"
	RegionOther       = "기타"
)

// DetectRegion определяет регион по первому токену адреса
func DetectRegion(address string) string {
	fields := strings.Fields(address)
	if len(fields) == 0 {
		return RegionOther
	}
	first := fields[0]
	switch {
	case strings.Contains(first, "광주"):
		return RegionGwangju
	case strings.Contains(first, "전남"), strings.Contains(first, "전라남"):
		return RegionJeollanamdo
	case strings.Contains(first, "전북"), strings.Contains(first, "전라북"):
		return RegionJeollabukdo
	default:
		return RegionOther
	}
}
