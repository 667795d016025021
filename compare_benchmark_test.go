package dejson_test

import (
	stdjson "encoding/json"
	"testing"

	"github.com/francoispqt/gojay"
	gojson "github.com/goccy/go-json"
	"github.com/viant/dejson"
	"github.com/viant/dejson/derive"
)

type compareBasic struct {
	ID   int
	Name string
	Flag bool
}

type compareAdvanced struct {
	ID      int
	Name    string
	Score   float64
	Tags    []string
	Payload map[string]string
	Child   *compareBasic
}

func init() {
	derive.MustRegister[compareBasic]()
	derive.MustRegister[compareAdvanced]()
}

func (c *compareBasic) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "ID":
		return dec.Int(&c.ID)
	case "Name":
		return dec.String(&c.Name)
	case "Flag":
		return dec.Bool(&c.Flag)
	}
	return nil
}

func (c *compareBasic) NKeys() int { return 3 }

var (
	compareBasicData    = []byte(`{"ID":7,"Name":"alpha","Flag":true}`)
	compareAdvancedData = []byte(`{"ID":11,"Name":"beta","Score":99.1,"Tags":["x","y","z"],"Payload":{"k1":"1","k2":"v2"},"Child":{"ID":1,"Name":"child","Flag":true}}`)
)

func BenchmarkCompare_Unmarshal_Basic_Dejson(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out compareBasic
		if err := dejson.Unmarshal(compareBasicData, &out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_Unmarshal_Basic_Stdlib(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out compareBasic
		if err := stdjson.Unmarshal(compareBasicData, &out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_Unmarshal_Basic_Goccy(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out compareBasic
		if err := gojson.Unmarshal(compareBasicData, &out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_Unmarshal_Basic_Gojay(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out compareBasic
		if err := gojay.UnmarshalJSONObject(compareBasicData, &out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_Unmarshal_Advanced_Dejson(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out compareAdvanced
		if err := dejson.Unmarshal(compareAdvancedData, &out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_Unmarshal_Advanced_Stdlib(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out compareAdvanced
		if err := stdjson.Unmarshal(compareAdvancedData, &out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_Unmarshal_Advanced_Goccy(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out compareAdvanced
		if err := gojson.Unmarshal(compareAdvancedData, &out); err != nil {
			b.Fatal(err)
		}
	}
}
