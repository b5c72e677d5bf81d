package config

// Builder constructs a CleanConfig with a fluent API.
// The cleaner only accepts the finished value returned by Build.
type Builder struct {
	cfg CleanConfig
}

// NewBuilder starts from the default configuration
func NewBuilder() *Builder {
	return &Builder{cfg: *DefaultConfig()}
}

func (b *Builder) Path(path string) *Builder {
	b.cfg.Path = path
	return b
}

func (b *Builder) Patterns(patterns ...string) *Builder {
	b.cfg.Patterns = append([]string(nil), patterns...)
	return b
}

func (b *Builder) Presets(names ...string) *Builder {
	b.cfg.Presets = append([]string(nil), names...)
	return b
}

func (b *Builder) ExcludePatterns(patterns ...string) *Builder {
	b.cfg.ExcludePatterns = append([]string(nil), patterns...)
	return b
}

func (b *Builder) DryRun(v bool) *Builder {
	b.cfg.DryRun = v
	return b
}

func (b *Builder) SkipConfirmation(v bool) *Builder {
	b.cfg.SkipConfirmation = v
	return b
}

func (b *Builder) IncludeSymlinks(v bool) *Builder {
	b.cfg.IncludeSymlinks = v
	return b
}

func (b *Builder) RemoveBrokenSymlinks(v bool) *Builder {
	b.cfg.RemoveBrokenSymlinks = v
	return b
}

func (b *Builder) StatsMode(v bool) *Builder {
	b.cfg.StatsMode = v
	return b
}

func (b *Builder) OlderThan(d string) *Builder {
	b.cfg.OlderThan = d
	return b
}

func (b *Builder) ShowProgress(v bool) *Builder {
	b.cfg.ShowProgress = v
	return b
}

func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// Build returns a copy of the configuration; later builder calls do not affect it
func (b *Builder) Build() CleanConfig {
	out := b.cfg
	out.Patterns = append([]string(nil), b.cfg.Patterns...)
	out.Presets = append([]string(nil), b.cfg.Presets...)
	out.ExcludePatterns = append([]string(nil), b.cfg.ExcludePatterns...)
	return out
}
