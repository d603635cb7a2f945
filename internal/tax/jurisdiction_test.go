package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJurisdiction(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Jurisdiction
	}{
		{"blank", "   ", Jurisdiction{}},
		{"name", "Karnataka", Jurisdiction{Code: "29", Name: "Karnataka"}},
		{"name any case", " tamil   nadu ", Jurisdiction{Code: "33", Name: "tamil nadu"}},
		{"alias", "Orissa", Jurisdiction{Code: "21", Name: "Orissa"}},
		{"code", "29", Jurisdiction{Code: "29", Name: "Karnataka"}},
		{"short code", "7", Jurisdiction{Code: "07", Name: "Delhi"}},
		{"code-name", "29-Karnataka", Jurisdiction{Code: "29", Name: "Karnataka"}},
		{"code colon name", "27 : Maharashtra", Jurisdiction{Code: "27", Name: "Maharashtra"}},
		{"unknown code keeps name", "99-Nowhere", Jurisdiction{Code: "99", Name: "Nowhere"}},
		{"gstin", "29abcde1234f1z5", Jurisdiction{Code: "29", Name: "Karnataka"}},
		{"unknown name", "Atlantis", Jurisdiction{Name: "Atlantis"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJurisdiction(tt.in))
		})
	}
}

func TestSameState(t *testing.T) {
	tests := []struct {
		name string
		a, b Jurisdiction
		want bool
	}{
		{"same code", Jurisdiction{Code: "29"}, Jurisdiction{Code: "29"}, true},
		{"different code", Jurisdiction{Code: "29"}, Jurisdiction{Code: "07"}, false},
		{"code beats name", Jurisdiction{Code: "29", Name: "X"}, Jurisdiction{Code: "29", Name: "Y"}, true},
		{"names folded", Jurisdiction{Name: " Goa "}, Jurisdiction{Name: "GOA"}, true},
		{"names differ", Jurisdiction{Name: "Goa"}, Jurisdiction{Name: "Kerala"}, false},
		{"one side empty", Jurisdiction{}, Jurisdiction{Code: "29"}, false},
		{"both empty", Jurisdiction{}, Jurisdiction{}, false},
		{"code vs name only", Jurisdiction{Code: "29"}, Jurisdiction{Name: "Karnataka"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameState(tt.a, tt.b))
			assert.Equal(t, tt.want, SameState(tt.b, tt.a))
		})
	}
}

func TestParsedFormsAgree(t *testing.T) {
	forms := []string{"Karnataka", "karnataka", "29", "29-Karnataka", "29ABCDE1234F1Z5"}
	for _, a := range forms {
		for _, b := range forms {
			assert.True(t, SameState(ParseJurisdiction(a), ParseJurisdiction(b)), "%q vs %q", a, b)
		}
	}
}

func TestJurisdiction_String(t *testing.T) {
	assert.Equal(t, "29-Karnataka", ParseJurisdiction("29-karnataka").String())
	assert.Equal(t, "Atlantis", ParseJurisdiction("Atlantis").String())
	assert.Equal(t, "", Jurisdiction{}.String())
	assert.True(t, Jurisdiction{}.IsZero())
	assert.False(t, delhi.IsZero())
}
