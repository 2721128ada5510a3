package classifier

import (
	"testing"

	"github.com/planetoid/news-analyzer/pkg/model"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		truthfulness, importance int
		want                     model.Category
	}{
		{71, 71, model.GoldenLemon},
		{70, 70, model.PlainWater},
		{71, 70, model.HoneyGreen},
		{70, 71, model.ExpiredMilk},
		{80, 80, model.GoldenLemon},
		{80, 60, model.HoneyGreen},
		{60, 60, model.PlainWater},
		{60, 80, model.ExpiredMilk},
		{0, 0, model.PlainWater},
		{100, 100, model.GoldenLemon},
		{0, 100, model.ExpiredMilk},
		{100, 0, model.HoneyGreen},
	}

	for _, tt := range tests {
		if got := Classify(tt.truthfulness, tt.importance); got != tt.want {
			t.Errorf("Classify(%d, %d) = %q, want %q", tt.truthfulness, tt.importance, got, tt.want)
		}
	}
}

func TestClassifyTotal(t *testing.T) {
	counts := map[model.Category]int{}
	for tr := 0; tr <= 100; tr++ {
		for im := 0; im <= 100; im++ {
			c := Classify(tr, im)
			if !c.Valid() {
				t.Fatalf("Classify(%d, %d) = %q, not a valid category", tr, im, c)
			}
			counts[c]++
		}
	}

	// 71..100 共 30 个值，0..70 共 71 个值
	want := map[model.Category]int{
		model.GoldenLemon: 30 * 30,
		model.HoneyGreen:  30 * 71,
		model.PlainWater:  71 * 71,
		model.ExpiredMilk: 71 * 30,
	}
	for c, n := range want {
		if counts[c] != n {
			t.Errorf("category %q covered %d pairs, want %d", c, counts[c], n)
		}
	}
}

func TestReconcile(t *testing.T) {
	result := &model.AnalysisResult{
		Truthfulness: 40,
		Importance:   90,
		DrinkRecommendation: model.DrinkRecommendation{
			Name:     "金桔檸檬",
			Reason:   "模型的理由",
			Category: model.GoldenLemon,
		},
	}

	if !Reconcile(result) {
		t.Fatal("Reconcile() should report a disagreement")
	}
	rec := result.DrinkRecommendation
	if rec.Category != model.ExpiredMilk || rec.ModelCategory != model.GoldenLemon {
		t.Errorf("after Reconcile: %+v", rec)
	}
	if rec.Reason != "模型的理由" || rec.Name != "金桔檸檬" {
		t.Errorf("Reconcile() must keep name and reason verbatim: %+v", rec)
	}

	// 再次执行结果不变
	if !Reconcile(result) {
		t.Error("second Reconcile() should still report the original disagreement")
	}
	if result.DrinkRecommendation.Category != model.ExpiredMilk || result.DrinkRecommendation.ModelCategory != model.GoldenLemon {
		t.Errorf("Reconcile() is not idempotent: %+v", result.DrinkRecommendation)
	}
}

func TestReconcileAgreement(t *testing.T) {
	result := &model.AnalysisResult{
		Truthfulness:        85,
		Importance:          75,
		DrinkRecommendation: model.DrinkRecommendation{Category: model.GoldenLemon},
	}
	if Reconcile(result) {
		t.Error("Reconcile() reported a disagreement for matching categories")
	}
	if result.DrinkRecommendation.ModelCategory != "" {
		t.Errorf("ModelCategory = %q, want empty", result.DrinkRecommendation.ModelCategory)
	}
}
