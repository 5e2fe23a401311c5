// Package geo holds the static province/district lookup used by address
// fields and list filters across every registration domain.
package geo

import (
	_ "embed"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed data/geo.toml
var geoData []byte

type District struct {
	Code string `toml:"code" json:"code"`
	Name string `toml:"name" json:"name"`
}

type Province struct {
	Code      string     `toml:"code" json:"code"`
	Name      string     `toml:"name" json:"name"`
	Districts []District `toml:"districts" json:"districts"`
}

type table struct {
	Provinces []Province `toml:"provinces"`
}

var load = sync.OnceValue(func() *table {
	t := &table{}
	if err := toml.Unmarshal(geoData, t); err != nil {
		panic(err)
	}
	return t
})

func Provinces() []Province {
	return load().Provinces
}

func ProvinceName(code string) string {
	for _, p := range load().Provinces {
		if p.Code == code {
			return p.Name
		}
	}
	return ""
}

func DistrictName(code string) string {
	for _, p := range load().Provinces {
		for _, d := range p.Districts {
			if d.Code == code {
				return d.Name
			}
		}
	}
	return ""
}

// DistrictInProvince reports whether a district belongs to a province;
// address forms reset the district when the province changes.
func DistrictInProvince(districtCode, provinceCode string) bool {
	if districtCode == "" {
		return true
	}
	for _, p := range load().Provinces {
		if p.Code != provinceCode {
			continue
		}
		for _, d := range p.Districts {
			if d.Code == districtCode {
				return true
			}
		}
	}
	return false
}
