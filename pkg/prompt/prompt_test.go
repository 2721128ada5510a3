package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	article := "  台北市政府今日宣布，將在年底前完成全市公園的無障礙設施改善工程。  "
	got := Build(article)

	mustContain := []string{
		strings.TrimSpace(article),
		Rubric,
		Classification,
		`"truthfulness"`,
		`"importance"`,
		`"impact"`,
		`"drink_recommendation"`,
		`"target_audience"`,
		"100-150字",
		`"locations": [{"name": "地點名稱"}]`,
	}
	for _, s := range mustContain {
		if !strings.Contains(got, s) {
			t.Errorf("Build() missing %q", s)
		}
	}

	for _, kind := range []string{"people", "numbers", "locations", "organizations", "dates", "datasets"} {
		if !strings.Contains(got, `"`+kind+`"`) {
			t.Errorf("Build() missing entity kind %q", kind)
		}
	}

	if strings.Contains(got, "map_link") || strings.Contains(got, "openstreetmap") {
		t.Errorf("Build() must not ask the model for map links")
	}
}

func TestRubricRanges(t *testing.T) {
	for _, r := range []string{"80-95", "10-40", "10-25", "40-70", "70-100", "5-30", "30-60", "60-100"} {
		if !strings.Contains(Rubric, r) {
			t.Errorf("Rubric missing range %s", r)
		}
	}
}
