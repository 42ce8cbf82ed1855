package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/pkg/config"
)

type fakeTitleUpdater struct {
	titles []string
	err    error
}

func (f *fakeTitleUpdater) UpdateTitle(ctx context.Context, title string) error {
	f.titles = append(f.titles, title)
	return f.err
}

func enabledConfig() *config.Config {
	return &config.Config{
		Enabled:       true,
		Replacement:   "Renamer",
		MatchVariants: true,
	}
}

func TestRunner_Handle(t *testing.T) {
	r, err := NewRunner(enabledConfig(), Options{})
	require.NoError(t, err)

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "user_prompt_rewritten",
			ev:   Event{Site: config.SiteUserPrompt, Text: "ask opencode about it"},
			want: "ask Renamer about it",
		},
		{
			name: "variant_rewritten",
			ev:   Event{Site: config.SiteAssistantOutput, Text: "the open_code flag"},
			want: "the Renamer flag",
		},
		{
			name: "url_untouched",
			ev:   Event{Site: config.SiteToolOutput, Text: "fetched https://opencode.ai/docs"},
			want: "fetched https://opencode.ai/docs",
		},
		{
			name: "unknown_site_follows_global_flag",
			ev:   Event{Site: "mystery", Text: "opencode"},
			want: "Renamer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Handle(context.Background(), tt.ev)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunner_DisabledSite(t *testing.T) {
	cfg := enabledConfig()
	cfg.Hooks = map[string]bool{config.SiteToolOutput: false}

	r, err := NewRunner(cfg, Options{})
	require.NoError(t, err)

	got := r.Handle(context.Background(), Event{Site: config.SiteToolOutput, Text: "opencode output"})
	assert.Equal(t, "opencode output", got)
}

func TestRunner_DisabledGlobally(t *testing.T) {
	r, err := NewRunner(config.Default(), Options{})
	require.NoError(t, err)

	got := r.Handle(context.Background(), Event{Site: config.SiteUserPrompt, Text: "opencode"})
	assert.Equal(t, "opencode", got)
}

func TestRunner_SessionTitleSideEffect(t *testing.T) {
	t.Run("title_pushed_to_host", func(t *testing.T) {
		titles := &fakeTitleUpdater{}
		r, err := NewRunner(enabledConfig(), Options{TitleUpdater: titles})
		require.NoError(t, err)

		got := r.Handle(context.Background(), Event{Site: config.SiteSessionTitle, Text: "opencode session"})
		assert.Equal(t, "Renamer session", got)
		require.Equal(t, []string{"Renamer session"}, titles.titles)
	})

	t.Run("host_error_swallowed", func(t *testing.T) {
		titles := &fakeTitleUpdater{err: errors.New("host offline")}
		r, err := NewRunner(enabledConfig(), Options{TitleUpdater: titles})
		require.NoError(t, err)

		got := r.Handle(context.Background(), Event{Site: config.SiteSessionTitle, Text: "opencode session"})
		assert.Equal(t, "Renamer session", got, "a host failure must not break the event flow")
	})

	t.Run("other_sites_do_not_touch_titles", func(t *testing.T) {
		titles := &fakeTitleUpdater{}
		r, err := NewRunner(enabledConfig(), Options{TitleUpdater: titles})
		require.NoError(t, err)

		r.Handle(context.Background(), Event{Site: config.SiteUserPrompt, Text: "opencode"})
		assert.Empty(t, titles.titles)
	})
}

func TestRunner_Reload(t *testing.T) {
	r, err := NewRunner(enabledConfig(), Options{})
	require.NoError(t, err)

	next := &config.Config{Enabled: true, Replacement: "Other"}
	require.NoError(t, r.Reload(next))

	got := r.Handle(context.Background(), Event{Site: config.SiteUserPrompt, Text: "opencode"})
	assert.Equal(t, "Other", got)

	t.Run("failed_reload_keeps_previous", func(t *testing.T) {
		bad := &config.Config{Enabled: true, Word: "has space"}
		require.Error(t, r.Reload(bad))

		got := r.Handle(context.Background(), Event{Site: config.SiteUserPrompt, Text: "opencode"})
		assert.Equal(t, "Other", got)
	})
}
