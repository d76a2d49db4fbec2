package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	SourcesDir        string
	Port              string
	Keywords          []string
	BatchLimit        int
	SchedulerInterval int
	CheckTimes        []string
	APIAccessKey      string

	// Notification transports
	PushoverToken string
	PushoverUser  string
	WebhookURL    string
	DeliveryPause int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
