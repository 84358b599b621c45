package descriptor

// Extension is the validated description of the extension to generate.
type Extension struct {
	ID             string                 `yaml:"id" json:"id" toml:"id"`
	DisplayName    string                 `yaml:"displayName" json:"displayName" toml:"displayName"`
	Description    string                 `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Publisher      string                 `yaml:"publisher,omitempty" json:"publisher,omitempty" toml:"publisher,omitempty"`
	Version        string                 `yaml:"version,omitempty" json:"version,omitempty" toml:"version,omitempty"`
	Activation     Activation             `yaml:"activation,omitempty" json:"activation,omitempty" toml:"activation,omitempty"`
	Provider       Provider               `yaml:"provider" json:"provider" toml:"provider"`
	LSP            LSP                    `yaml:"lsp" json:"lsp" toml:"lsp"`
	Dependencies   []Dependency           `yaml:"dependencies,omitempty" json:"dependencies,omitempty" toml:"dependencies,omitempty"`
	ProviderConfig map[string]interface{} `yaml:"providerConfig,omitempty" json:"providerConfig,omitempty" toml:"providerConfig,omitempty"`
	Analysis       Analysis               `yaml:"analysis,omitempty" json:"analysis,omitempty" toml:"analysis,omitempty"`
}

// Activation lists when the editor should activate the extension.
type Activation struct {
	Languages    []string `yaml:"languages,omitempty" json:"languages,omitempty" toml:"languages,omitempty"`
	FilePatterns []string `yaml:"filePatterns,omitempty" json:"filePatterns,omitempty" toml:"filePatterns,omitempty"`
	Events       []string `yaml:"events,omitempty" json:"events,omitempty" toml:"events,omitempty"`
}

// Provider describes the external analysis process the extension spawns or
// connects to.
type Provider struct {
	Name       string   `yaml:"name" json:"name" toml:"name"`
	BinaryName string   `yaml:"binaryName" json:"binaryName" toml:"binaryName"`
	Org        string   `yaml:"org,omitempty" json:"org,omitempty" toml:"org,omitempty"`
	Repo       string   `yaml:"repo,omitempty" json:"repo,omitempty" toml:"repo,omitempty"`
	ReleaseTag string   `yaml:"releaseTag,omitempty" json:"releaseTag,omitempty" toml:"releaseTag,omitempty"`
	Transport  string   `yaml:"transport,omitempty" json:"transport,omitempty" toml:"transport,omitempty"`
	Args       []string `yaml:"args,omitempty" json:"args,omitempty" toml:"args,omitempty"`
}

// LSP describes the language server the provider talks to.
type LSP struct {
	LanguageID    string   `yaml:"languageId" json:"languageId" toml:"languageId"`
	ServerCommand string   `yaml:"serverCommand,omitempty" json:"serverCommand,omitempty" toml:"serverCommand,omitempty"`
	ServerArgs    []string `yaml:"serverArgs,omitempty" json:"serverArgs,omitempty" toml:"serverArgs,omitempty"`
	ProxyRequired bool     `yaml:"proxyRequired,omitempty" json:"proxyRequired,omitempty" toml:"proxyRequired,omitempty"`
	ProxyPort     int      `yaml:"proxyPort,omitempty" json:"proxyPort,omitempty" toml:"proxyPort,omitempty"`
}

// Dependency is another editor extension this one requires.
type Dependency struct {
	ID      string `yaml:"id" json:"id" toml:"id"`
	Version string `yaml:"version,omitempty" json:"version,omitempty" toml:"version,omitempty"`
}

// Analysis holds default analysis settings contributed by the extension.
type Analysis struct {
	LabelSelector         string   `yaml:"labelSelector,omitempty" json:"labelSelector,omitempty" toml:"labelSelector,omitempty"`
	EnableDefaultRulesets bool     `yaml:"enableDefaultRulesets,omitempty" json:"enableDefaultRulesets,omitempty" toml:"enableDefaultRulesets,omitempty"`
	Rulesets              []string `yaml:"rulesets,omitempty" json:"rulesets,omitempty" toml:"rulesets,omitempty"`
	ExcludedPaths         []string `yaml:"excludedPaths,omitempty" json:"excludedPaths,omitempty" toml:"excludedPaths,omitempty"`
}

// Format constants for descriptor files.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)
