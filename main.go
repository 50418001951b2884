// entry point //
package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	config "github.ibmgcloud.net/dth/pmo_saver/config"
	"github.ibmgcloud.net/dth/pmo_saver/filestore"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
	"github.ibmgcloud.net/dth/pmo_saver/mailstore"
	"github.ibmgcloud.net/dth/pmo_saver/pmo"
	"github.ibmgcloud.net/dth/pmo_saver/propstore"
	"github.ibmgcloud.net/dth/pmo_saver/server"
)

func main() {
	fmt.Print(`
  ==== ======   ====       ====
  ==== ======== ====       ====
   ==   ==   ==   ===     ===
   ==   ==   ==   ====   ====
   ==   ======    == == == ==
   ==   ======    == == == ==
   ==   ==   ==   ==  ===  ==
   ==   ==   ==   ==  ===  ==
  ==== ======== ====   =   ====
  ==== ======   ====       ====

*********************************
*  =========                    *
*  pmo_saver                    *
*  =========                    *
*                               *
*  Maintained by                *
*  Christopher Besch            *
*  <christopher.besch@ibm.com>  *
*********************************

`)
	// ignore sighup until system has booted
	signal.Ignore(syscall.SIGHUP)
	lg.SetupLogger()
	defer lg.CloseLogger()

	cfg := config.GetCfg()
	lg.RotateLog(cfg)
	lg.Loge(cfg, errors.New("pmo_saver booting up"))

	idb := propstore.GetDb()
	defer idb.Close()

	if cfg.PrintLicenses {
		printLicenses()
	}

	env := &server.Env{
		Cfg:       cfg,
		DB:        idb,
		MailStore: &mailstore.Store{Root: cfg.MailStoreRoot},
		Provider:  &filestore.Provider{Root: cfg.FileStoreRoot},
		Poster:    &pmo.HTTPPoster{},
	}
	server.StartEndlessRunner(env)
}
