// single source of truth for service config, unchanged except for config loading //
package global_structs

type Config struct {
	CriticalMailTo   string `yaml:"critical_mail_to"`
	CriticalMailFrom string `yaml:"critical_mail_from"`

	// logs and the property store live here
	DataDir string `yaml:"data_dir"`
	// selection maps older than this get pruned during maintenance
	// 0 keeps everything forever
	SelectionKeepDays int `yaml:"selection_keep_days"`

	Port     int    `yaml:"port"`
	Domain   string `yaml:"domain"`
	SSLCert  string `yaml:"ssl_cert"`
	SSLKey   string `yaml:"ssl_key"`
	APIToken string `yaml:"api_token"`

	// drive provider root, every folder id maps to a directory below this
	FileStoreRoot string `yaml:"file_store_root"`
	// thread dumps live here, one directory of raw messages per thread id
	MailStoreRoot string `yaml:"mail_store_root"`

	// manual ticket numbers get prefixed with this key
	DefaultProjectKey string `yaml:"default_project_key"`
	// used when a user has no custom jql stored
	DefaultJQL string `yaml:"default_jql"`
	// used when a user has no webhook url stored
	DefaultPMOWebhookURL string `yaml:"default_pmo_webhook_url"`

	PrintLicenses bool `yaml:"print_licenses"`

	// only when CriticalMailTo is set
	SendEMailHost string `yaml:"send_email_host"`
	SendEMailPort int    `yaml:"send_email_port"`
}
