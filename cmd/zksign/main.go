// Command zksign packs amounts and signs rollup transactions.
package main

import (
	"os"

	"github.com/matter-labs-archive/zksync-go/internal/logx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.Error("CMD", "Command execution failed: ", err)
		os.Exit(1)
	}
}
