package classifier

import "github.com/planetoid/news-analyzer/pkg/model"

// Threshold 真实度与重要性的分界，严格大于才算“高”
const Threshold = 70

// Classify 由真实度与重要性确定饮料分类
func Classify(truthfulness, importance int) model.Category {
	trusted := truthfulness > Threshold
	important := importance > Threshold

	switch {
	case trusted && important:
		return model.GoldenLemon
	case trusted:
		return model.HoneyGreen
	case important:
		return model.ExpiredMilk
	default:
		return model.PlainWater
	}
}

// Reconcile 用重新计算的分类覆盖模型自报的分类。
// 两者不一致时返回 true，并把模型原值保存在 ModelCategory 中。
func Reconcile(result *model.AnalysisResult) bool {
	computed := Classify(result.Truthfulness, result.Importance)
	rec := &result.DrinkRecommendation

	reported := rec.Category
	if rec.ModelCategory != "" {
		reported = rec.ModelCategory
	}

	rec.Category = computed
	if reported == computed {
		rec.ModelCategory = ""
		return false
	}
	rec.ModelCategory = reported
	return true
}
