package vworld

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// addressResponse - ответ GetAddress (поиск по строке)
type addressResponse struct {
	Response struct {
		Status string `json:"status"`
		Error  *struct {
			Code string `json:"code"`
			Text string `json:"text"`
		} `json:"error,omitempty"`
		Result struct {
			Items []addressItem `json:"items"`
		} `json:"result"`
	} `json:"response"`
}

type addressItem struct {
	ID      string `json:"id"`
	Address struct {
		Road   string `json:"road"`
		Parcel string `json:"parcel"`
	} `json:"address"`
	Point struct {
		X *flexFloat `json:"x"`
		Y *flexFloat `json:"y"`
	} `json:"point"`
	Structure struct {
		PNU string `json:"pnu"`
	} `json:"structure"`
}

// reverseResponse - ответ GetAddress по координатам: result это массив
type reverseResponse struct {
	Response struct {
		Status string        `json:"status"`
		Result []reverseItem `json:"result"`
	} `json:"response"`
}

type reverseItem struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Structure struct {
		PNU string `json:"pnu"`
	} `json:"structure"`
}

// flexFloat принимает число как в виде JSON number, так и строкой ("126.85").
// Непарсируемое значение превращается в NaN и отсекается валидацией координат.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = flexFloat(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = flexFloat(math.NaN())
		return nil
	}
	*f = flexFloat(v)
	return nil
}

var _ json.Unmarshaler = (*flexFloat)(nil)

// value - NaN для отсутствующего поля
func (f *flexFloat) value() float64 {
	if f == nil {
		return math.NaN()
	}
	return float64(*f)
}
