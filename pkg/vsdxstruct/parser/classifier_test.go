package parser

import "testing"

func TestClassifierIsCore(t *testing.T) {
	c := NewClassifier(DefaultClassifierRules())

	tests := []struct {
		name     string
		xml      string
		label    string
		expected bool
	}{
		{"excluded kind", `<Shape ID="1" Type="Guide"><Text>K1</Text></Shape>`, "K1", false},
		{"connector beats furniture", `<Shape ID="1" Type="Dynamic connector"/>`, "Title", true},
		{"connector kind case-insensitive", `<Shape ID="1" Type="dynamic connector"/>`, "x", true},
		{"copyright", `<Shape ID="1"><Text>©2020 VOLKSWAGEN AG</Text></Shape>`, "©2020 VOLKSWAGEN AG", false},
		{"furniture substring", `<Shape ID="1"><Text>Blatt 3</Text></Shape>`, "Blatt 3", false},
		{"group with children", `<Shape ID="1" Type="Group"><Shapes/></Shape>`, "ID:1", true},
		{"group without children", `<Shape ID="1" Type="Group"/>`, "ID:1", false},
		{"text", `<Shape ID="1"><Text>K1</Text></Shape>`, "K1", true},
		{"whitespace text only", `<Shape ID="1"><Text>  </Text></Shape>`, "ID:1", false},
		{"connection section", `<Shape ID="1"><Section N="Connection"><Row IX="0"><Cell N="X" V="0"/></Row></Section></Shape>`, "ID:1", true},
		{"empty connection section", `<Shape ID="1"><Section N="Connection"/></Shape>`, "ID:1", false},
		{"legacy connection point", `<Shape ID="1"><ConnectionPoint ID="0" X="0" Y="0"/></Shape>`, "ID:1", true},
		{"bare shape", `<Shape ID="1"/>`, "ID:1", false},
		{"text of child does not count", `<Shape ID="1"><Shapes><Shape ID="2"><Text>K2</Text></Shape></Shapes></Shape>`, "ID:1", false},
	}

	for _, tt := range tests {
		result := c.IsCore(parseShape(t, tt.xml), tt.label)
		if result != tt.expected {
			t.Errorf("%s: IsCore() = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}

func TestClassifierMinGeometry(t *testing.T) {
	rules := DefaultClassifierRules()
	rules.MinGeometry = &GeometryThreshold{MinWidth: 0.1, MinHeight: 0.1}
	c := NewClassifier(rules)

	tests := []struct {
		xml      string
		expected bool
	}{
		{`<Shape ID="1"><Cell N="PinX" V="1"/><Cell N="PinY" V="1"/><Cell N="Width" V="1"/><Cell N="Height" V="1"/><Text>K1</Text></Shape>`, true},
		{`<Shape ID="1"><Cell N="PinX" V="1"/><Cell N="PinY" V="1"/><Cell N="Width" V="0.05"/><Cell N="Height" V="1"/><Text>K1</Text></Shape>`, false},
		{`<Shape ID="1"><Text>K1</Text></Shape>`, false},
	}

	for _, tt := range tests {
		result := c.IsCore(parseShape(t, tt.xml), "K1")
		if result != tt.expected {
			t.Errorf("IsCore(%s) = %v, expected %v", tt.xml, result, tt.expected)
		}
	}
}
