package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		desc  string
		want  Category
	}{
		{"Storm surge warning as hurricane nears landfall", "NHC forecast track shifts east", StormUpdates},
		{"Red Cross opens new shelter, volunteers needed", "donation drive for evacuees", ReliefEfforts},
		{"Crews begin debris cleanup as power restored", "insurance claims surge after the storm", Recovery},
		{"Residents urged to prepare emergency kit", "mandatory evacuation order for coastal zones", Preparedness},
		{"Quiet day across the region", "", StormUpdates}, // default
	}
	for _, tt := range tests {
		got := Classify(tt.title, tt.desc)
		if got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.title, tt.desc, got, tt.want)
		}
	}
}

func TestClassifyTitleOutweighsDescription(t *testing.T) {
	// One title hit (2x) should beat one description hit.
	got := Classify("Fundraiser for storm victims", "wind damage reported")
	if got != ReliefEfforts {
		t.Errorf("expected ReliefEfforts, got %q", got)
	}
}

func TestAllCategoriesStable(t *testing.T) {
	cats := AllCategories()
	if len(cats) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(cats))
	}
	if cats[0] != StormUpdates {
		t.Errorf("expected Storm Updates first, got %q", cats[0])
	}
}
