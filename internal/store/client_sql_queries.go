// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveDraft = `
		INSERT INTO drafts (
			page_key,
			locale,
			step,
			schema_version,
			data,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (page_key) DO UPDATE SET
			locale         = excluded.locale,
			step           = excluded.step,
			schema_version = excluded.schema_version,
			data           = excluded.data,
			updated_at     = excluded.updated_at;`

	getDraft = `
		SELECT
			page_key,
			locale,
			step,
			schema_version,
			data,
			updated_at
		FROM drafts
		WHERE page_key = $1;`

	deleteDraft = `
		DELETE FROM drafts
		WHERE page_key = $1;`
)
