package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Swagger string                     `json:"swagger"`
		Info    struct{ Title string }     `json:"info"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("rendered doc is not JSON: %v", err)
	}
	if doc.Swagger != "2.0" || doc.Info.Title != "Bank API" {
		t.Fatalf("unexpected header: %+v", doc)
	}
	for _, prefix := range []string{"/api/v2", "/testing/api/v2"} {
		for _, route := range []string{"/auth", "/info", "/account", "/accounts"} {
			if _, ok := doc.Paths[prefix+route]; !ok {
				t.Fatalf("missing path %s%s", prefix, route)
			}
		}
	}
}
