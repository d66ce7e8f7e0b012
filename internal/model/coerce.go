package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TagList — список тегов, терпимый к форме входных данных.
// Распаковывается из JSON-массива, из строки с запятыми или из чего
// угодно ещё: непригодное значение превращается в пустой список,
// ошибки не возвращаются никогда.
type TagList []string

// UnmarshalJSON реализует json.Unmarshaler.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var arr []any
	if err := json.Unmarshal(data, &arr); err == nil {
		res := make([]string, 0, len(arr))
		for _, v := range arr {
			s, ok := v.(string)
			if !ok {
				s = fmt.Sprint(v)
			}
			if s = strings.TrimSpace(s); s != "" {
				res = append(res, s)
			}
		}
		*t = res
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		res := make([]string, 0)
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				res = append(res, part)
			}
		}
		*t = res
		return nil
	}

	*t = TagList{}
	return nil
}

// FlexInt — целое число, терпимое к форме входных данных.
// Принимает число или числовую строку; всё остальное читается как 0,
// ошибки не возвращаются никогда.
type FlexInt int

// UnmarshalJSON реализует json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = FlexInt(v)
			return nil
		}
	}

	*f = 0
	return nil
}
