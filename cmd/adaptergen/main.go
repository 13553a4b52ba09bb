// Command adaptergen generates a <Name>CaseAdapter delegating to a mock module.
//
//	adaptergen --pkg . --type ParamHandler --exclude SetLogger --out param_handler_case_adapter.go
//
// Every flag can also be set through the environment, prefixed with
// ADAPTERGEN_, e.g. ADAPTERGEN_TYPE=ParamHandler. Flags take precedence.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/viper"
)

func main() {
	defer glog.Flush()

	cmd := newRootCmd(viper.New())
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if err := cmd.Execute(); err != nil {
		glog.Error(err)
		glog.Flush()
		os.Exit(1)
	}
}
