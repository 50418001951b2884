// parse and sanity-check yaml config //
package config

import (
	"log"
	"net/url"
	"os"

	"gopkg.in/yaml.v2"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

func mustBeDir(path string, setting string) {
	if fileInfo, err := os.Stat(path); err != nil || !fileInfo.IsDir() {
		log.Fatalf("'%s' specified by %s in the config doesn't point to a directory\n", path, setting)
	}
}

func validateConfig(cfg *glb.Config) {
	if (cfg.CriticalMailTo == "") != (cfg.CriticalMailFrom == "") {
		log.Fatal("either both critical_mail_to and critical_mail_from need to be defined or neither")
	}
	if cfg.CriticalMailTo != "" {
		if cfg.SendEMailHost == "" {
			log.Fatal("send_email_host needs to be defined when critical mails are enabled")
		}
		if cfg.SendEMailPort == 0 {
			log.Fatal("send_email_port needs to be defined when critical mails are enabled")
		}
	}

	if cfg.DataDir == "" {
		log.Fatal("data_dir needs to be defined")
	}
	mustBeDir(cfg.DataDir, "data_dir")

	if cfg.FileStoreRoot == "" {
		log.Fatal("file_store_root needs to be defined")
	}
	mustBeDir(cfg.FileStoreRoot, "file_store_root")

	if cfg.MailStoreRoot == "" {
		log.Fatal("mail_store_root needs to be defined")
	}
	mustBeDir(cfg.MailStoreRoot, "mail_store_root")

	if cfg.Port == 0 {
		log.Fatal("port needs to be defined")
	}
	if cfg.Domain == "" {
		log.Fatal("domain needs to be defined")
	}
	if cfg.APIToken == "" {
		log.Fatal("api_token needs to be defined")
	}
	// certs get checked by golang http

	if cfg.SelectionKeepDays < 0 {
		log.Fatal("selection_keep_days can't be negative")
	}

	if cfg.DefaultPMOWebhookURL != "" {
		parsed, err := url.Parse(cfg.DefaultPMOWebhookURL)
		if err != nil || !parsed.IsAbs() {
			log.Fatalf("'%s' specified by default_pmo_webhook_url in the config isn't an absolute url\n", cfg.DefaultPMOWebhookURL)
		}
	}
	// DefaultProjectKey and DefaultJQL are optional, helper.go provides fallbacks
}

func GetCfg() *glb.Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		lg.LogeNoMail(err)
		log.Fatalf("Couldn't read config file '%s'\n", configPath)
	}
	var cfg glb.Config
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		lg.LogeNoMail(err)
		log.Fatal("Failed to parse yaml config file.")
	}
	validateConfig(&cfg)
	lg.Logf("loaded and validated config")

	return &cfg
}
