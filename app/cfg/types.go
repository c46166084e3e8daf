package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Collaborator configuration
	GroqAPIKey    string
	GroqBaseURL   string
	GroqModel     string
	TavilyAPIKey  string
	TavilyBaseURL string

	// Application configuration
	Port              string
	CatalogFile       string
	WorkerCount       int
	SchedulerInterval int
	ExtractContent    bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
