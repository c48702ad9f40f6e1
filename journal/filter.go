package journal

import (
	"net/url"
	"strings"
	"time"
)

// Filter narrows a trade listing. Zero fields do not filter.
type Filter struct {
	StartDate    string       `json:"startDate,omitempty"`
	EndDate      string       `json:"endDate,omitempty"`
	Asset        string       `json:"asset,omitempty"`
	ResultTypes  []ResultType `json:"resultType,omitempty"`
	FollowedPlan *bool        `json:"followedPlan,omitempty"`
}

// ParseFilter reads a filter from query parameters: startDate, endDate,
// asset, resultType (comma separated) and followedPlan (sim|nao|true|false).
// Values that do not parse are ignored rather than rejected.
func ParseFilter(v url.Values) Filter {
	var f Filter

	if d := strings.TrimSpace(v.Get("startDate")); validDate(d) {
		f.StartDate = d
	}
	if d := strings.TrimSpace(v.Get("endDate")); validDate(d) {
		f.EndDate = d
	}
	f.Asset = strings.TrimSpace(v.Get("asset"))

	if raw := v.Get("resultType"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if r, ok := ParseResultType(part); ok {
				f.ResultTypes = append(f.ResultTypes, r)
			}
		}
	}

	switch strings.ToLower(strings.TrimSpace(v.Get("followedPlan"))) {
	case "sim", "true", "yes", "1":
		b := true
		f.FollowedPlan = &b
	case "nao", "não", "false", "no", "0":
		b := false
		f.FollowedPlan = &b
	}

	return f
}

// Values is the inverse of ParseFilter.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	if f.Asset != "" {
		v.Set("asset", f.Asset)
	}
	if len(f.ResultTypes) > 0 {
		parts := make([]string, len(f.ResultTypes))
		for i, r := range f.ResultTypes {
			parts[i] = string(r)
		}
		v.Set("resultType", strings.Join(parts, ","))
	}
	if f.FollowedPlan != nil {
		if *f.FollowedPlan {
			v.Set("followedPlan", "sim")
		} else {
			v.Set("followedPlan", "nao")
		}
	}
	return v
}

func (f Filter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.StartDate != "" {
		conds = append(conds, "trade_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "trade_date <= ?")
		args = append(args, f.EndDate)
	}
	if f.Asset != "" {
		conds = append(conds, `asset LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(f.Asset)+"%")
	}
	if len(f.ResultTypes) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(f.ResultTypes)), ",")
		conds = append(conds, "result_type IN ("+marks+")")
		for _, r := range f.ResultTypes {
			args = append(args, string(r))
		}
	}
	if f.FollowedPlan != nil {
		conds = append(conds, "followed_plan = ?")
		args = append(args, *f.FollowedPlan)
	}
	return strings.Join(conds, " AND "), args
}

func validDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
