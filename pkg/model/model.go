package model

// Article 待分析的新闻文章，仅在单次请求内存在
type Article struct {
	SourceURL string
	RawText   string
}

// AnalysisResult 生成式分析的结构化结果
type AnalysisResult struct {
	Summary             string              `json:"summary"`
	TargetAudience      string              `json:"target_audience"`
	Truthfulness        int                 `json:"truthfulness"`
	Importance          int                 `json:"importance"`
	Impact              int                 `json:"impact"`
	DrinkRecommendation DrinkRecommendation `json:"drink_recommendation"`
	Entities            EntityBundle        `json:"entities"`
}

// DrinkRecommendation 饮料推荐
type DrinkRecommendation struct {
	Name     string   `json:"name"`
	Reason   string   `json:"reason"`
	Category Category `json:"category"`
	// ModelCategory 模型自报的分类与重新计算结果不一致时保留原值
	ModelCategory Category `json:"model_category,omitempty"`
}

// EntityBundle 六类实体集合，顺序保持模型输出顺序
type EntityBundle struct {
	People        []Person       `json:"people"`
	Numbers       []Number       `json:"numbers"`
	Locations     []Location     `json:"locations"`
	Organizations []Organization `json:"organizations"`
	Dates         []Date         `json:"dates"`
	Datasets      []Dataset      `json:"datasets"`
}

// Person 人物
type Person struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	WikiLink string `json:"wiki_link"`
}

// Number 关键数据
type Number struct {
	Value    string `json:"value"`
	Context  string `json:"context"`
	DataLink string `json:"data_link,omitempty"`
}

// Location 地点，MapLink 由 resolver 解析填充
type Location struct {
	Name    string `json:"name"`
	MapLink string `json:"map_link"`
}

// Organization 机构
type Organization struct {
	Name         string `json:"name"`
	OfficialLink string `json:"official_link"`
}

// Date 重要时间
type Date struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// Dataset 公开资料集
type Dataset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SearchLink  string `json:"search_link"`
}

// Clone 返回各切片独立的副本
func (b EntityBundle) Clone() EntityBundle {
	return EntityBundle{
		People:        append([]Person(nil), b.People...),
		Numbers:       append([]Number(nil), b.Numbers...),
		Locations:     append([]Location(nil), b.Locations...),
		Organizations: append([]Organization(nil), b.Organizations...),
		Dates:         append([]Date(nil), b.Dates...),
		Datasets:      append([]Dataset(nil), b.Datasets...),
	}
}
