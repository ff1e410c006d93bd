package enrich

import (
	"testing"

	"github.com/intelligrit/listnorm/internal/refindex"
	"github.com/intelligrit/listnorm/internal/schema"
	"github.com/intelligrit/listnorm/internal/table"
)

func testIndex(t *testing.T) *refindex.Index {
	t.Helper()
	idx, err := refindex.FromTable(&table.Table{
		Headers: []string{"pincode", "district", "statename", "latitude", "longitude"},
		Rows: [][]string{
			{"560001", "Bangalore", "Karnataka", "12.9716", "77.5946"},
			{"110001", "New Delhi", "Delhi", "", ""},
		},
	})
	if err != nil {
		t.Fatalf("building index: %v", err)
	}
	return idx
}

func TestPincodeRoundTrip(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["address"] = "12, MG Road, Bangalore 560001"

	st := e.Enrich(row)

	if row["pincode"] != "560001" {
		t.Fatalf("pincode = %q", row["pincode"])
	}
	if row["city"] != "Bangalore" {
		t.Errorf("city = %q, want from reference record", row["city"])
	}
	if row["state"] != "Karnataka" {
		t.Errorf("state = %q", row["state"])
	}
	if row["latitude"] != "12.9716" || row["longitude"] != "77.5946" {
		t.Errorf("coords = %q/%q", row["latitude"], row["longitude"])
	}
	if st.Pincodes != 1 || st.Cities != 1 || st.States != 1 || st.Coordinates != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestNonDestructive(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["address"] = "12, MG Road, Bangalore 560001"
	row["city"] = "Mysore"
	row["state"] = "Tamil Nadu"
	row["latitude"] = "1.0"
	row["longitude"] = "2.0"
	row["pincode"] = "999999"

	e.Enrich(row)

	if row["city"] != "Mysore" || row["state"] != "Tamil Nadu" {
		t.Errorf("existing city/state overwritten: %q/%q", row["city"], row["state"])
	}
	if row["latitude"] != "1.0" || row["longitude"] != "2.0" {
		t.Errorf("existing coords overwritten: %q/%q", row["latitude"], row["longitude"])
	}
	if row["pincode"] != "999999" {
		t.Errorf("existing pincode overwritten: %q", row["pincode"])
	}
}

func TestAddressTokenFallback(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["address"] = "Shop 4, Brigade Road, bangalore karnataka"

	e.Enrich(row)

	if row["state"] != "Karnataka" {
		t.Errorf("state = %q, want title-cased token match", row["state"])
	}
	if row["city"] != "Bangalore" {
		t.Errorf("city = %q", row["city"])
	}
	if row["area"] != "Shop 4" {
		t.Errorf("area = %q, want first comma segment", row["area"])
	}
}

func TestPincodeLookupSkipsDecomposition(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["address"] = "Connaught Place, 110001"

	e.Enrich(row)

	if row["city"] != "New Delhi" || row["state"] != "Delhi" {
		t.Errorf("city/state = %q/%q", row["city"], row["state"])
	}
	// lookup hit ends decomposition; area stays untouched
	if row["area"] != "" {
		t.Errorf("area = %q, want empty after lookup hit", row["area"])
	}
}

func TestCoordinateBackfillPartial(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["pincode"] = "560001"
	row["latitude"] = "99.9"

	e.Enrich(row)

	if row["latitude"] != "99.9" {
		t.Errorf("latitude overwritten: %q", row["latitude"])
	}
	if row["longitude"] != "77.5946" {
		t.Errorf("longitude = %q, want filled from record", row["longitude"])
	}
}

func TestCoordinateBackfillSkipsEmptyRecordValues(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["pincode"] = "110001" // record has no coordinates

	e.Enrich(row)

	if row["latitude"] != "" || row["longitude"] != "" {
		t.Errorf("coords = %q/%q, want empty", row["latitude"], row["longitude"])
	}
}

func TestPlusCodeNonInterference(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["area"] = "R9P7+8RC"

	st := e.Enrich(row)

	if row["latitude"] != "" || row["longitude"] != "" {
		t.Errorf("plus code populated coords: %q/%q", row["latitude"], row["longitude"])
	}
	if row["description"] != "Google Plus Code: R9P7+8RC" {
		t.Errorf("description = %q", row["description"])
	}
	if st.PlusCodes != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestPlusCodeAppendsToDescription(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["area"] = "R9P7+8RC, Koramangala"
	row["description"] = "Rooftop seating"

	e.Enrich(row)

	want := "Rooftop seating | Google Plus Code: R9P7+8RC"
	if row["description"] != want {
		t.Errorf("description = %q, want %q", row["description"], want)
	}
}

func TestCoordinatesFromSourceURL(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["source"] = "https://maps.example.com/@12.9716,77.5946,17z"

	e.Enrich(row)

	if row["latitude"] != "12.9716" || row["longitude"] != "77.5946" {
		t.Errorf("coords = %q/%q", row["latitude"], row["longitude"])
	}
}

func TestEmailBackfillOrder(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["address"] = "1st Floor, write to shop@example.in"
	row["source"] = "https://example.com/contact?mail=web@example.com"

	e.Enrich(row)

	if row["email"] != "shop@example.in" {
		t.Errorf("email = %q, want address hit before source", row["email"])
	}
}

func TestEnrichIdempotent(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["address"] = "12, MG Road, Bangalore 560001"
	row["area"] = "R9P7+8RC"
	row["description"] = "nan"

	e.Enrich(row)

	snapshot := make(map[string]string, len(row))
	for k, v := range row {
		snapshot[k] = v
	}

	e.Enrich(row)
	for k, v := range row {
		if snapshot[k] != v {
			t.Errorf("second enrich changed %q: %q -> %q", k, snapshot[k], v)
		}
	}
}

func TestFinalizeClearsSentinels(t *testing.T) {
	e := New(testIndex(t))

	row := schema.NewRow()
	row["name"] = "nan"
	row["ratings"] = "None"
	row["reviews"] = "NaN"

	e.Enrich(row)

	for _, f := range []string{"name", "ratings", "reviews"} {
		if row[f] != "" {
			t.Errorf("%s = %q, want empty after finalization", f, row[f])
		}
	}
}

func TestNilIndex(t *testing.T) {
	e := New(nil)

	row := schema.NewRow()
	row["address"] = "12, MG Road, Bangalore 560001"

	e.Enrich(row)

	if row["pincode"] != "560001" {
		t.Errorf("pincode = %q, extraction must not need an index", row["pincode"])
	}
	if row["city"] != "" {
		t.Errorf("city = %q, want empty with empty index", row["city"])
	}
}
