package parser

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/planetoid/news-analyzer/pkg/model"
)

// text 接受字符串、数字或 null 的 JSON 值
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

func (t text) String() string {
	return strings.TrimSpace(string(t))
}

// link 规范化链接，"#" 视为没有链接
func (t text) link() string {
	s := t.String()
	if s == "#" {
		return ""
	}
	return s
}

type rawPerson struct {
	Name     text `json:"name"`
	Title    text `json:"title"`
	WikiLink text `json:"wiki_link"`
}

type rawNumber struct {
	Value    text `json:"value"`
	Context  text `json:"context"`
	DataLink text `json:"data_link"`
}

type rawLocation struct {
	Name text `json:"name"`
}

type rawOrganization struct {
	Name         text `json:"name"`
	OfficialLink text `json:"official_link"`
}

type rawDate struct {
	Date  text `json:"date"`
	Event text `json:"event"`
}

type rawDataset struct {
	Name        text `json:"name"`
	Description text `json:"description"`
	SearchLink  text `json:"search_link"`
}

func parseEntities(data json.RawMessage) (model.EntityBundle, error) {
	bundle := model.EntityBundle{
		People:        []model.Person{},
		Numbers:       []model.Number{},
		Locations:     []model.Location{},
		Organizations: []model.Organization{},
		Dates:         []model.Date{},
		Datasets:      []model.Dataset{},
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return bundle, nil
	}

	var kinds map[string]json.RawMessage
	if err := json.Unmarshal(data, &kinds); err != nil {
		return bundle, &ParseError{Field: "entities", Rule: "必須是物件", Err: err}
	}

	for _, p := range decodeRecords[rawPerson]("people", kinds["people"], func(s string) rawPerson { return rawPerson{Name: text(s)} }) {
		if p.Name.String() == "" {
			continue
		}
		bundle.People = append(bundle.People, model.Person{Name: p.Name.String(), Title: p.Title.String(), WikiLink: p.WikiLink.link()})
	}
	for _, n := range decodeRecords[rawNumber]("numbers", kinds["numbers"], func(s string) rawNumber { return rawNumber{Value: text(s)} }) {
		if n.Value.String() == "" {
			continue
		}
		bundle.Numbers = append(bundle.Numbers, model.Number{Value: n.Value.String(), Context: n.Context.String(), DataLink: n.DataLink.link()})
	}
	for _, l := range decodeRecords[rawLocation]("locations", kinds["locations"], func(s string) rawLocation { return rawLocation{Name: text(s)} }) {
		if l.Name.String() == "" {
			continue
		}
		bundle.Locations = append(bundle.Locations, model.Location{Name: l.Name.String()})
	}
	for _, o := range decodeRecords[rawOrganization]("organizations", kinds["organizations"], func(s string) rawOrganization { return rawOrganization{Name: text(s)} }) {
		if o.Name.String() == "" {
			continue
		}
		bundle.Organizations = append(bundle.Organizations, model.Organization{Name: o.Name.String(), OfficialLink: o.OfficialLink.link()})
	}
	for _, d := range decodeRecords[rawDate]("dates", kinds["dates"], func(s string) rawDate { return rawDate{Date: text(s)} }) {
		if d.Date.String() == "" {
			continue
		}
		bundle.Dates = append(bundle.Dates, model.Date{Date: d.Date.String(), Event: d.Event.String()})
	}
	for _, d := range decodeRecords[rawDataset]("datasets", kinds["datasets"], func(s string) rawDataset { return rawDataset{Name: text(s)} }) {
		if d.Name.String() == "" {
			continue
		}
		bundle.Datasets = append(bundle.Datasets, model.Dataset{Name: d.Name.String(), Description: d.Description.String(), SearchLink: d.SearchLink.link()})
	}

	return bundle, nil
}

// decodeRecords 逐条解码实体记录，无法解码的记录被丢弃而不是让整个结果失败。
// 记录可以是对象、内嵌 JSON 对象的字符串，或只含名称的纯字符串。
func decodeRecords[T any](kind string, data json.RawMessage, fromString func(string) T) []T {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		logDropped(kind, "不是陣列", data)
		return nil
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				logDropped(kind, err.Error(), item)
				continue
			}
			s = strings.TrimSpace(s)
			if !strings.HasPrefix(s, "{") {
				out = append(out, fromString(s))
				continue
			}
			item = json.RawMessage(s)
		}

		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			logDropped(kind, err.Error(), item)
			continue
		}
		out = append(out, rec)
	}
	return out
}
