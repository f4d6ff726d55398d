package content

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Well-known section keys.
const (
	SectionAbout      = "about"
	SectionAboutTeam  = "about_team"
	SectionAboutStats = "about_stats"
	SectionContact    = "contact"
	SectionFooter     = "footer"
)

type SocialLinks map[string]string

type About struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Mission     string `json:"mission"`
	Vision      string `json:"vision"`
	Image       string `json:"image"`
}

type AboutTeam struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

type Stat struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Icon   string `json:"icon"`
	Order  int    `json:"order"`
	Active *bool  `json:"active,omitempty"`
}

type AboutStats struct {
	Title string `json:"title"`
	Stats []Stat `json:"stats"`
}

// VisibleStats returns active stats sorted by order. A stat without an
// explicit active flag is shown.
func (s AboutStats) VisibleStats() []Stat {
	out := make([]Stat, 0, len(s.Stats))
	for _, st := range s.Stats {
		if st.Active != nil && !*st.Active {
			continue
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

type Contact struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	WorkingHours string      `json:"workingHours"`
	MapURL       string      `json:"mapUrl"`
	SocialLinks  SocialLinks `json:"socialLinks"`
}

type Footer struct {
	FooterText    string      `json:"footerText"`
	CopyrightText string      `json:"copyrightText"`
	SocialLinks   SocialLinks `json:"socialLinks"`
}

// Decode converts fields into the typed view T.
func Decode[T any](f Fields) (T, error) {
	var out T
	b, err := json.Marshal(f)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

func checkShape[T any](f Fields) error {
	_, err := Decode[T](f)
	return err
}

// typedSections holds shape checks for the sections with a known layout.
// Any other key is stored as an untyped mapping.
var typedSections = map[string]func(Fields) error{
	SectionAbout:      checkShape[About],
	SectionAboutTeam:  checkShape[AboutTeam],
	SectionAboutStats: checkShape[AboutStats],
	SectionContact:    checkShape[Contact],
	SectionFooter:     checkShape[Footer],
}

// checkFields rejects values whose JSON type does not fit a typed section.
// Missing keys are always fine.
func checkFields(section string, f Fields) error {
	check, ok := typedSections[section]
	if !ok {
		return nil
	}
	if err := check(f); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidField, section, err)
	}
	return nil
}
