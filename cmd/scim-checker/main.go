// SPDX-FileCopyrightText: Copyright (c) 2024, the scim-checker authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/scimtools/scim-checker/pkg/build"
	checkcmd "github.com/scimtools/scim-checker/pkg/cmd/check"
	"github.com/scimtools/scim-checker/pkg/logging"
)

func main() {
	ctx := ctrlCHandler()

	app := &cli.App{
		Name:     build.AppName,
		Version:  fmt.Sprintf("%s/%s-%s", build.GetVersion(), runtime.GOOS, runtime.GOARCH),
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{Name: build.AuthorName, Email: build.AuthorEmail},
		},
		Copyright:            build.Copyright,
		Usage:                "a tool for checking SCIM server protocol conformance",
		EnableBashCompletion: true,
		Before: func(_ *cli.Context) (err error) {
			logging.SetUpLogging(logging.DefaultLogLevel, logging.LogFormatTextColorful)
			return nil
		},
	}

	app.Commands = append(app.Commands,
		checkcmd.NewCommand(),
	)

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to run command")
	}
}

func ctrlCHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt)
	go func() {
		<-stopCh
		cancel()
		os.Exit(1)
	}()
	return ctx
}
