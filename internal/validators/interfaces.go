// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces the structural rules of form schemas and the
// shape of submitted answers.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values.
//     Supports optional rule-level scoping through the Field* constants.
//   - FormValidator: builder rules, evaluated in order, first failure wins.
//   - SubmissionValidator: answers checked against the schema they fill.
//
// Validators are injected into services and into the form builder so the
// same rules run on both sides of the HTTP API.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named rules.
	Validate(context.Context, any, ...string) error
}
