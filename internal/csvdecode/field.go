package csvdecode

import (
	"strconv"
	"strings"
)

func col(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func colUint32(row []string, i int) (uint32, bool) {
	s := col(row, i)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func colFloat64(row []string, i int) (float64, bool) {
	s := col(row, i)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func colFloat32Ptr(row []string, i int) *float32 {
	v, ok := colFloat64(row, i)
	if !ok {
		return nil
	}
	f := float32(v)
	return &f
}

func colInt32Ptr(row []string, i int) *int32 {
	s := col(row, i)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil
	}
	n := int32(v)
	return &n
}

func colUint8Ptr(row []string, i int) *uint8 {
	s := col(row, i)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return nil
	}
	n := uint8(v)
	return &n
}

func colUint32Ptr(row []string, i int) *uint32 {
	v, ok := colUint32(row, i)
	if !ok {
		return nil
	}
	return &v
}
