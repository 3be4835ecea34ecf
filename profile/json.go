package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mpwgo/mpw/engine"
	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/types"
)

const jsonFormatVersion = 1

// jsonDocExport, jsonDocUser, jsonDocQuestion and jsonDocSite mirror the
// on-disk JSON shape. They are kept separate from Site/User because the on-disk field names and the
// in-memory ones diverge (site name is a map key on disk, a struct field in
// memory), and because Questions need their own wire shape.
type jsonDocExport struct {
	Format   int       `json:"format"`
	Redacted bool      `json:"redacted"`
	Date     time.Time `json:"date"`
}

type jsonDocUser struct {
	FullName    string               `json:"fullName"`
	KeyID       string               `json:"keyID"`
	Algorithm   engine.AlgorithmVersion `json:"algorithm"`
	DefaultType types.ResultType     `json:"defaultType"`
}

type jsonDocQuestion struct {
	Keyword string           `json:"keyword,omitempty"`
	Type    types.ResultType `json:"type"`
	Content string           `json:"content,omitempty"`
}

type jsonDocSite struct {
	Type           types.ResultType        `json:"type"`
	Counter        uint32                  `json:"counter"`
	Algorithm      engine.AlgorithmVersion `json:"algorithm"`
	LoginName      string                  `json:"loginName,omitempty"`
	LoginGenerated bool                    `json:"loginGenerated,omitempty"`
	Content        string                  `json:"content,omitempty"`
	URL            string                  `json:"url,omitempty"`
	Uses           uint32                  `json:"uses"`
	LastUsed       time.Time               `json:"lastUsed"`
	Questions      []jsonDocQuestion       `json:"questions,omitempty"`
}

// readJSONInfo decodes just the envelope of a json-format blob.
func readJSONInfo(data []byte) (Info, error) {
	var doc struct {
		Export jsonDocExport `json:"export"`
		User   jsonDocUser   `json:"user"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Info{}, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
	}
	return Info{
		Format:    types.FormatJSON,
		Algorithm: doc.User.Algorithm,
		KeyID:     doc.User.KeyID,
		Date:      doc.Export.Date,
		Redacted:  doc.Export.Redacted,
	}, nil
}

// decodeJSON parses a complete json-format blob into a User. Site insertion
// order is recovered by walking the "sites" object's raw tokens rather than
// unmarshaling into a Go map, since encoding/json map decoding does not
// preserve key order.
func decodeJSON(data []byte) (*User, error) {
	var doc struct {
		Export jsonDocExport          `json:"export"`
		User   jsonDocUser            `json:"user"`
		Sites  map[string]jsonDocSite `json:"sites"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
	}
	order, err := jsonSiteOrder(data)
	if err != nil {
		return nil, err
	}

	u := &User{
		FullName:    doc.User.FullName,
		KeyID:       doc.User.KeyID,
		Algorithm:   doc.User.Algorithm,
		DefaultType: doc.User.DefaultType,
		Redacted:    doc.Export.Redacted,
		LastUsed:    doc.Export.Date,
	}
	for _, name := range order {
		s, ok := doc.Sites[name]
		if !ok {
			continue
		}
		site := Site{
			Name:           name,
			Type:           s.Type,
			Counter:        s.Counter,
			Algorithm:      s.Algorithm,
			LoginName:      s.LoginName,
			LoginGenerated: s.LoginGenerated,
			Content:        s.Content,
			URL:            s.URL,
			Uses:           s.Uses,
			LastUsed:       s.LastUsed,
		}
		for _, q := range s.Questions {
			site.Questions = append(site.Questions, Question{
				Keyword: q.Keyword,
				Type:    q.Type,
				Content: q.Content,
			})
		}
		u.Sites = append(u.Sites, site)
	}
	return u, nil
}

// jsonSiteOrder re-walks data's top-level "sites" object with a streaming
// decoder to recover the order its keys appeared in on disk.
func jsonSiteOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	// Find the top-level object, then the "sites" key.
	if _, err := dec.Token(); err != nil { // '{'
		return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
		}
		key, _ := tok.(string)
		if key != "sites" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
			}
			continue
		}
		if _, err := dec.Token(); err != nil { // '{' of sites
			return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
		}
		var order []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
			}
			name, _ := nameTok.(string)
			order = append(order, name)
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
			}
		}
		return order, nil
	}
	return nil, nil
}

// encodeJSON renders u (already sealed by the caller) as a json-format
// blob, writing the sites object by hand so its keys keep u.Sites' order
// instead of the alphabetical order encoding/json would otherwise impose.
func encodeJSON(u *User) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("{\n")

	exportJSON, err := json.MarshalIndent(jsonDocExport{
		Format:   jsonFormatVersion,
		Redacted: u.Redacted,
		Date:     orNow(u.LastUsed),
	}, "  ", "  ")
	if err != nil {
		return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
	}
	fmt.Fprintf(&b, "  \"export\": %s,\n", exportJSON)

	userJSON, err := json.MarshalIndent(jsonDocUser{
		FullName:    u.FullName,
		KeyID:       u.KeyID,
		Algorithm:   u.Algorithm,
		DefaultType: u.DefaultType,
	}, "  ", "  ")
	if err != nil {
		return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
	}
	fmt.Fprintf(&b, "  \"user\": %s,\n", userJSON)

	b.WriteString("  \"sites\": {\n")
	for i, s := range u.Sites {
		var questions []jsonDocQuestion
		for _, q := range s.Questions {
			questions = append(questions, jsonDocQuestion{Keyword: q.Keyword, Type: q.Type, Content: q.Content})
		}
		siteJSON, err := json.MarshalIndent(jsonDocSite{
			Type:           s.Type,
			Counter:        s.Counter,
			Algorithm:      s.Algorithm,
			LoginName:      s.LoginName,
			LoginGenerated: s.LoginGenerated,
			Content:        s.Content,
			URL:            s.URL,
			Uses:           s.Uses,
			LastUsed:       orNow(s.LastUsed),
			Questions:      questions,
		}, "    ", "  ")
		if err != nil {
			return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
		}
		nameJSON, err := json.Marshal(s.Name)
		if err != nil {
			return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
		}
		fmt.Fprintf(&b, "    %s: %s", nameJSON, siteJSON)
		if i < len(u.Sites)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  }\n")
	b.WriteString("}\n")
	return b.Bytes(), nil
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t
}
