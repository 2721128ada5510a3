package prompt

import (
	"strings"
)

// SystemMessage 约束模型只输出 JSON
const SystemMessage = "你是一個新聞分析 JSON 生成器。請只輸出一個 JSON 物件，不要輸出任何其他內容。"

// Rubric 评分标准，原样嵌入提示词
const Rubric = `評分標準（請嚴格遵守）：
- 真實度 truthfulness：
  - 有明確來源、官方說法或數據佐證的內容：80-95
  - 使用「據傳」、「據稱」、「未經證實」、「reportedly」、「allegedly」、「unconfirmed」等未證實傳聞用語：10-40
  - 已被公開闢謠的內容：10-25（無論細節看起來多詳盡）
- 重要性 importance：
  - 娛樂、地方趣聞：10-40
  - 一般社會新聞：40-70
  - 重大政策或經濟影響新聞：70-100
- 影響力 impact：
  - 個人層面的軼事：5-30
  - 與特定族群相關：30-60
  - 廣泛的社會或政策影響：60-100`

// Classification 饮料分类标准
const Classification = `飲料分類標準：
- golden_lemon (金桔檸檬): 真實度>70且重要性>70
- honey_green (蜂蜜綠茶): 真實度>70但重要性≤70
- plain_water (無糖白開水): 真實度≤70且重要性≤70
- expired_milk (過期奶茶): 真實度≤70但重要性>70`

// Schema 要求模型输出的 JSON 结构
const Schema = `{
    "summary": "100-150字的重點摘要",
    "target_audience": "預期讀者群體",
    "truthfulness": 0到100的整數,
    "importance": 0到100的整數,
    "impact": 0到100的整數,
    "drink_recommendation": {
        "name": "推薦飲料名稱",
        "reason": "推薦理由",
        "category": "golden_lemon/honey_green/plain_water/expired_milk 其中之一"
    },
    "entities": {
        "people": [{"name": "姓名", "title": "職位", "wiki_link": "維基百科連結"}],
        "numbers": [{"value": "數字", "context": "背景說明", "data_link": "相關資料連結，沒有則留空"}],
        "locations": [{"name": "地點名稱"}],
        "organizations": [{"name": "機構名稱", "official_link": "官方網站連結"}],
        "dates": [{"date": "日期時間", "event": "相關事件"}],
        "datasets": [{"name": "資料集關鍵字", "description": "說明", "search_link": "https://data.gov.tw/datasets/search?p=1&size=10&s=資料集關鍵字"}]
    }
}`

const notes = `特別注意：
- locations 只需提供地點名稱，不要提供任何連結。
- 對於 datasets，請根據新聞主題提取相關的政府資料集關鍵字，並設定搜尋連結，例如：{"name": "交通事故", "description": "道路交通事故統計", "search_link": "https://data.gov.tw/datasets/search?p=1&size=10&s=交通事故"}
- 三個分數都必須是 0 到 100 之間的整數。`

// Build 根据文章原文构建分析提示词
func Build(articleText string) string {
	var sb strings.Builder
	sb.WriteString("請分析以下新聞內容，並以 JSON 格式回應。\n\n")
	sb.WriteString("新聞內容：\n")
	sb.WriteString(strings.TrimSpace(articleText))
	sb.WriteString("\n\n請依照以下結構提供分析：\n")
	sb.WriteString(Schema)
	sb.WriteString("\n\n")
	sb.WriteString(Rubric)
	sb.WriteString("\n\n")
	sb.WriteString(Classification)
	sb.WriteString("\n\n")
	sb.WriteString(notes)
	sb.WriteString("\n")
	return sb.String()
}
