package icons

import (
	"image"
	"reflect"
	"testing"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestGet(t *testing.T) {
	want := []string{"cloud", "fog", "lightning", "rain", "snow", "sun"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v; want %v", got, want)
	}

	for _, name := range want {
		img, ok := Get(name)
		if !ok {
			t.Errorf("Get(%q) missing", name)
			continue
		}
		if got := img.Bounds(); got != image.Rect(0, 0, Size, Size) {
			t.Errorf("Get(%q).Bounds() = %v", name, got)
		}
	}

	if _, ok := Get("meteor"); ok {
		t.Error("Get(\"meteor\") = ok; want missing")
	}
}

func TestParse(t *testing.T) {
	sun, _ := Get("sun")
	bm := sun.(*image1bit.VerticalLSB)
	if bm.BitAt(0, 0) != Paper {
		t.Error("sun(0,0) is ink; want paper")
	}
	if bm.BitAt(11, 1) != Ink {
		t.Error("sun(11,1) is paper; want ink")
	}

	rows := make([]string, Size)
	for i := range rows {
		rows[i] = "........................"
	}
	rows[3] = "......."
	if _, err := parse(rows); err == nil {
		t.Error("parse(short row) = nil; want error")
	}
	rows[3] = "...........x............"
	if _, err := parse(rows); err == nil {
		t.Error("parse(bad char) = nil; want error")
	}
	if _, err := parse(rows[:5]); err == nil {
		t.Error("parse(5 rows) = nil; want error")
	}
}
