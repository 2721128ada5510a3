package model

// Category 四象限饮料分类
type Category string

const (
	GoldenLemon Category = "golden_lemon"
	HoneyGreen  Category = "honey_green"
	PlainWater  Category = "plain_water"
	ExpiredMilk Category = "expired_milk"
)

// Categories 全部合法分类，按展示顺序排列
var Categories = []Category{GoldenLemon, HoneyGreen, PlainWater, ExpiredMilk}

var categoryLabels = map[Category][2]string{
	GoldenLemon: {"金桔檸檬", "優質真實新聞"},
	HoneyGreen:  {"蜂蜜綠茶", "真實但不重要"},
	PlainWater:  {"無糖白開水", "平淡普通內容"},
	ExpiredMilk: {"過期奶茶", "危險假新聞"},
}

// Valid 是否为四个合法分类之一
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label 饮料名称
func (c Category) Label() string {
	return categoryLabels[c][0]
}

// Tagline 分类含义
func (c Category) Tagline() string {
	return categoryLabels[c][1]
}

// ParseCategory 解析模型给出的分类标签，未知标签返回 false
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}
