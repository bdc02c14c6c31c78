// Command iroha is the client-facing CLI: it constructs and submits
// transactions (no signatures are produced) and runs queries against the
// World reconstructed by replaying the local Block Store.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("iroha: command failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
