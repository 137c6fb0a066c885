package services

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

// PageTypeRule maps a "module[/controller[/action]]" path to a page-type label.
type PageTypeRule struct {
	Path     string
	PageType string
}

// ParsePageTypeRules validates raw rules as read from the layout file. Every rule needs a
// non-empty string path and pageType.
func ParsePageTypeRules(raw []map[string]any) ([]PageTypeRule, error) {
	rules := make([]PageTypeRule, 0, len(raw))
	for i, entry := range raw {
		path, err := ruleString(entry, "path")
		if err != nil {
			return nil, configurationError("ParsePageTypeRules", "rule %d: %w", i, err)
		}
		pageType, err := ruleString(entry, "pageType")
		if err != nil {
			return nil, configurationError("ParsePageTypeRules", "rule %d: %w", i, err)
		}
		rules = append(rules, PageTypeRule{Path: path, PageType: pageType})
	}
	return rules, nil
}

func ruleString(entry map[string]any, key string) (string, error) {
	value, ok := entry[key]
	if !ok || value == nil {
		return "", fmt.Errorf("invalid %s: expected string, received null", key)
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid %s: expected string, received %T", key, value)
	}
	if str == "" {
		return "", fmt.Errorf("invalid %s: expected non-empty string", key)
	}
	return str, nil
}

// PageTypeMetaProvider labels the current route with the first matching rule.
type PageTypeMetaProvider struct {
	rules []pageTypeMatcher
}

type pageTypeMatcher struct {
	segments []string
	pageType string
}

var _ MetaProvider = (*PageTypeMetaProvider)(nil)

// NewPageTypeMetaProvider validates and compiles rules in order.
func NewPageTypeMetaProvider(rules []PageTypeRule) (*PageTypeMetaProvider, error) {
	matchers := make([]pageTypeMatcher, 0, len(rules))
	for i, rule := range rules {
		if rule.Path == "" {
			return nil, configurationError("NewPageTypeMetaProvider", "rule %d: path is required", i)
		}
		if rule.PageType == "" {
			return nil, configurationError("NewPageTypeMetaProvider", "rule %d: pageType is required", i)
		}
		matchers = append(matchers, pageTypeMatcher{
			segments: splitRulePath(rule.Path),
			pageType: rule.PageType,
		})
	}
	return &PageTypeMetaProvider{rules: matchers}, nil
}

// Get returns the page type of the route, or "" when no rule matches.
func (p *PageTypeMetaProvider) Get(_ context.Context, page PageContext) any {
	return p.Match(page.Route)
}

// Match returns the page type of route.
func (p *PageTypeMetaProvider) Match(route domain.Route) string {
	for _, rule := range p.rules {
		if rule.matches(route) {
			return rule.pageType
		}
	}
	return ""
}

// splitRulePath accepts "catalog/product/view" and, for paths without a slash, the full
// layout handle form "checkout_cart_index". Any other slash-less path is a module name, which
// may itself contain underscores ("klevu_search").
func splitRulePath(path string) []string {
	if !strings.Contains(path, "/") {
		if parts := strings.Split(path, "_"); len(parts) == 3 && parts[0] != "" && parts[1] != "" && parts[2] != "" {
			return parts
		}
		return []string{path}
	}
	return strings.Split(path, "/")
}

func (m pageTypeMatcher) matches(route domain.Route) bool {
	if len(m.segments) == 0 || m.segments[0] == "" {
		return false
	}
	if m.segments[0] != route.Module {
		return false
	}
	if len(m.segments) > 1 && m.segments[1] != "" && m.segments[1] != route.Controller {
		return false
	}
	if len(m.segments) > 2 && m.segments[2] != "" && m.segments[2] != route.Action {
		return false
	}
	return true
}
