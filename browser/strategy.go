// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"iter"
	"regexp"

	"github.com/jongio/pac-read/logutil"
	"github.com/jongio/pac-read/registry"
)

// Strategy names, in priority order.
const (
	StrategyURLHandlerClass = "url-handler-class"
	StrategyUserChoice      = "user-choice"
	StrategyGenericClass    = "generic-class"
)

// userChoiceValue names the value holding the chosen program identifier.
const userChoiceValue = "ProgId"

var (
	// classRoots are the class registration roots in lookup order.
	classRoots = []registry.Path{
		registry.MustParsePath(`HKCU\Software\Classes`),
		registry.MustParsePath(`HKLM\Software\Classes`),
		registry.MustParsePath(`HKCR`),
	}

	userChoicePath = registry.MustParsePath(
		`HKCU\Software\Microsoft\Windows\Shell\Associations\UrlAssociations\http\UserChoice`)

	legacyRoot = registry.MustParsePath(`HKCR`)

	// urlHandlerPattern matches FirefoxURL plus the per-install hash suffix.
	urlHandlerPattern = regexp.MustCompile(`(?i)^FirefoxURL(-[0-9A-F]+)?$`)
)

// openCommand is the key below a class that holds its launch template.
var openCommand = []string{"shell", "open", "command"}

// genericClass is the class name for web addresses.
const genericClass = "http"

// Candidate is a command template found by a strategy.
type Candidate struct {
	Strategy string `json:"strategy"`
	Path     string `json:"path"`
	Template string `json:"template"`
}

// Strategy is one named way of discovering a command template.
// Lookup yields candidates in priority order and must stop as soon as the
// consumer stops ranging.
type Strategy struct {
	Name   string
	Lookup func(src Source) iter.Seq[Candidate]
}

// Source is the registry view handed to strategies. Misses are logged at
// debug level and unexpected failures at warn level; neither is returned.
type Source struct {
	Registry registry.Registry
	Log      *logutil.ComponentLogger
}

func (s Source) read(p registry.Path, name string) (string, bool) {
	value, err := registry.ReadValue(s.Registry, p, name)
	switch {
	case err == nil && value != "":
		return value, true
	case err == nil:
		s.Log.Debug("registry value empty", "path", p.String(), "value", name)
	case registry.IsMiss(err):
		s.Log.Debug("registry miss", "path", p.String(), "error", err)
	default:
		s.Log.Warn("registry read failed", "path", p.String(), "error", err)
	}
	return "", false
}

func (s Source) readDefault(p registry.Path) (string, bool) {
	return s.read(p, "")
}

func (s Source) subKeys(p registry.Path) []string {
	names, err := registry.SubKeyNames(s.Registry, p)
	switch {
	case err == nil:
	case registry.IsMiss(err):
		s.Log.Debug("registry miss", "path", p.String(), "error", err)
	default:
		s.Log.Warn("registry enumeration failed", "path", p.String(), "error", err)
	}
	return names
}

// DefaultStrategies returns the built-in strategies in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		URLHandlerClassStrategy(),
		UserChoiceStrategy(),
		GenericClassStrategy(),
	}
}

// URLHandlerClassStrategy looks for FirefoxURL handler classes in each class
// root. Matches within a root are tried in enumeration order.
func URLHandlerClassStrategy() Strategy {
	return Strategy{
		Name: StrategyURLHandlerClass,
		Lookup: func(src Source) iter.Seq[Candidate] {
			return func(yield func(Candidate) bool) {
				for _, root := range classRoots {
					for _, name := range src.subKeys(root) {
						if !urlHandlerPattern.MatchString(name) {
							continue
						}
						p := root.Join(name).Join(openCommand...)
						tmpl, ok := src.readDefault(p)
						if !ok {
							continue
						}
						if !yield(Candidate{Strategy: StrategyURLHandlerClass, Path: p.String(), Template: tmpl}) {
							return
						}
					}
				}
			}
		},
	}
}

// UserChoiceStrategy follows the per-user http association to its class.
func UserChoiceStrategy() Strategy {
	return Strategy{
		Name: StrategyUserChoice,
		Lookup: func(src Source) iter.Seq[Candidate] {
			return func(yield func(Candidate) bool) {
				progID, ok := src.read(userChoicePath, userChoiceValue)
				if !ok {
					return
				}
				p := legacyRoot.Join(progID).Join(openCommand...)
				tmpl, ok := src.readDefault(p)
				if !ok {
					return
				}
				yield(Candidate{Strategy: StrategyUserChoice, Path: p.String(), Template: tmpl})
			}
		},
	}
}

// GenericClassStrategy reads the http class open command from each class root.
func GenericClassStrategy() Strategy {
	return Strategy{
		Name: StrategyGenericClass,
		Lookup: func(src Source) iter.Seq[Candidate] {
			return func(yield func(Candidate) bool) {
				for _, root := range classRoots {
					p := root.Join(genericClass).Join(openCommand...)
					tmpl, ok := src.readDefault(p)
					if !ok {
						continue
					}
					if !yield(Candidate{Strategy: StrategyGenericClass, Path: p.String(), Template: tmpl}) {
						return
					}
				}
			}
		},
	}
}
