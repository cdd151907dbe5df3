// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the terminal client runtime.
//
// It runs one form wizard, optionally behind the Google sign-in gate, in the
// terminal until the answers are submitted or the user quits.
package client
