package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	files, err := filepath.Glob("locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[activity_command_description]
	other = "Fetch recent commits and pull requests for a repository"

	[analyze_command_description]
	other = "Analyze a pull request and produce a narrative story"

	[connect_command_description]
	other = "Store a GitHub token for the current user"

	[disconnect_command_description]
	other = "Remove the stored GitHub token for the current user"

	[repos_command_description]
	other = "List repositories for the authenticated user"

	[fetching_activity]
	other = "Fetching activity for {{.Repo}}..."

	[activity_skipped]
	other = "Activity sync skipped for {{.Repo}}"

	[analyzing_pr]
	other = "Analyzing {{.URL}}..."

	[invalid_pr_url]
	other = "Not a recognizable pull request URL: {{.URL}}"

	[token_stored]
	other = "GitHub token stored for user {{.User}}"

	[token_removed]
	other = "GitHub token removed for user {{.User}}"

	[commits_found]
	one = "{{.Count}} commit"
	other = "{{.Count}} commits"

	[pull_requests_found]
	one = "{{.Count}} pull request"
	other = "{{.Count}} pull requests"

	[story_source_model]
	other = "Generated by {{.Model}}"

	[story_source_rule_based]
	other = "Generated by rule-based analysis"
	`
