// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command pac-read opens a packet message in its HTML viewer form.
//
// It is registered as the message reader of the packet radio client, which
// invokes it with the message file as the third argument:
//
//	pac-read.exe <arg1> <arg2> C:\PacFORMS\in\6DM-101P_O_ICS213.txt
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newApp(), os.Args[1:])
	stop()
	os.Exit(code)
}
