// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package browser finds the command that opens the user's web browser and
// launches it with a viewer URL.
//
// # Resolution
//
// A Resolver searches the registry for a shell "open" command template using
// an ordered list of strategies:
//
//  1. url-handler-class: FirefoxURL handler classes (FirefoxURL or
//     FirefoxURL-<hex>, one per installed copy) under HKCU\Software\Classes,
//     HKLM\Software\Classes and HKCR, in that order.
//  2. user-choice: the ProgId the user picked for http links, looked up
//     under HKCR.
//  3. generic-class: the http class under HKCU\Software\Classes,
//     HKLM\Software\Classes and HKCR, in that order.
//
// The first strategy to produce a non-empty template wins and the remaining
// strategies are not consulted. In exhaustive mode every strategy runs to
// completion and every match is logged, but the chosen template is still the
// first, highest-priority match. Exhaustive mode is a diagnostic aid and
// never changes the result.
//
// Registry misses are expected. A missing key or value simply means the
// strategy has nothing to offer at that location.
//
// # Launching
//
// Launch splits a template with shellutil.SplitTemplate, substituting the URL
// for %1, and hands the resulting argument vector to a procutil.Runner:
//
//	res := browser.NewResolver(registry.System()).Resolve(browser.Options{})
//	tmpl, ok := res.Template()
//	if !ok {
//	    return browser.ErrNoBrowser
//	}
//	code, err := browser.Launch(ctx, browser.LaunchOptions{
//	    Template: tmpl,
//	    URL:      "file:///C:/PacFORMS/form-ics213.html?mode=readonly&msgno=6DM-101P",
//	    Runner:   procutil.ExecRunner{},
//	})
package browser
