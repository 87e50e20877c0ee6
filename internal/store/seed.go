// Copyright (c) 2025-2026 IEEE Student Branch Web Team
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ieeesb/chapter-go/internal/auth"
	"github.com/ieeesb/chapter-go/internal/model"
)

// Default seed credentials. Every seeded admin shares the same password so
// the demo login page can list them.
const SeedAdminPassword = "changeme"

type seedEntity struct {
	entity     CreateEntityParams
	adminEmail string
	adminName  string
}

var seedEntities = []seedEntity{
	{
		entity: CreateEntityParams{
			ID:          "ieee-hkn-society",
			Kind:        model.KindSociety,
			Name:        "IEEE HKN Society",
			Image:       "https://hkn.ieee.org/wp-content/uploads/2017/07/HKN_Logo.jpg",
			Description: "The HKN Society is dedicated to recognizing excellence in the IEEE fields of interest.",
			Vision:      "To be a pioneering IEEE-HKN chapter that exemplifies leadership in engineering education.",
			Mission:     "To recognize and celebrate academic merit, professional promise, and leadership potential among engineering students.",
			Objectives:  "To recognize and honor academic excellence, leadership potential, and exemplary character among students.",
		},
		adminEmail: "hkn.admin@ieee.example.edu",
		adminName:  "HKN Society Admin",
	},
	{
		entity: CreateEntityParams{
			ID:          "ieee-circuits-and-systems-society",
			Kind:        model.KindSociety,
			Name:        "IEEE Circuits and Systems Society",
			Description: "Advances the theory, analysis, design, practical implementation, and application of circuits.",
			Vision:      "To be the leading global community for circuits and systems professionals.",
			Mission:     "To promote the advancement of circuits and systems theory, design, and implementation.",
			Objectives:  "To advance circuit theory and systems design through research and education.",
		},
		adminEmail: "cas.admin@ieee.example.edu",
		adminName:  "CAS Society Admin",
	},
	{
		entity: CreateEntityParams{
			ID:          "ieee-student-council",
			Kind:        model.KindCouncil,
			Name:        "IEEE Student Council",
			Description: "The IEEE Student Council coordinates activities across all IEEE student branches.",
			Vision:      "To foster excellence in IEEE student activities and professional development.",
			Mission:     "To coordinate and support IEEE student branches in their technical and professional activities.",
			Objectives:  "To provide leadership and coordination for IEEE student activities.",
		},
		adminEmail: "council.admin@ieee.example.edu",
		adminName:  "Student Council Admin",
	},
}

// Seed creates sample societies, councils, and their admin accounts. It is
// idempotent: entities and users that already exist are left untouched.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	passwordHash, err := auth.HashPassword(SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	for _, se := range seedEntities {
		if _, err := queries.GetEntity(ctx, se.entity.Kind, se.entity.ID); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking entity %s: %w", se.entity.ID, err)
		}

		entity, err := queries.CreateEntity(ctx, se.entity)
		if err != nil {
			return fmt.Errorf("creating entity %s: %w", se.entity.ID, err)
		}

		user, err := queries.CreateUser(ctx, CreateUserParams{
			Email:        se.adminEmail,
			PasswordHash: passwordHash,
			Name:         se.adminName,
			Role:         se.entity.Kind.AdminRole(),
			EntityKind:   se.entity.Kind,
			EntityID:     se.entity.ID,
		})
		if err != nil {
			return fmt.Errorf("creating admin for %s: %w", se.entity.ID, err)
		}

		if err := seedEntityContent(ctx, queries, entity); err != nil {
			return fmt.Errorf("seeding content for %s: %w", se.entity.ID, err)
		}

		slog.Info("seeded entity with admin account",
			"entity", entity.ID,
			"kind", entity.Kind,
			"admin_email", user.Email,
		)
	}

	return nil
}

// seedEntityContent populates sample members, events, and achievements for a
// freshly created entity.
func seedEntityContent(ctx context.Context, queries *Queries, entity model.Entity) error {
	members := []model.Member{
		{Name: "Ms. Thanmai Gadagamma", Role: "Chair", Email: "chair@" + entity.ID + ".example.edu", SortOrder: 1},
		{Name: "Dr. Emily Brown", Role: "Faculty Advisor", SortOrder: 2},
	}
	for _, m := range members {
		m.EntityKind = entity.Kind
		m.EntityID = entity.ID
		if _, err := queries.CreateMember(ctx, m); err != nil {
			return err
		}
	}

	events := []model.Event{
		{
			Bucket:    model.BucketPast,
			Title:     "Induction Ceremony 2023",
			Date:      "2023-11-15",
			Time:      "10:00 AM",
			Venue:     "Main Auditorium",
			Organizer: entity.Name,
		},
		{
			Bucket:    model.BucketPast,
			Title:     "Circuit Design Workshop",
			Date:      "2023-09-20",
			Time:      "2:00 PM",
			Venue:     "ECE Seminar Hall",
			Organizer: entity.Name,
		},
		{
			Bucket:    model.BucketUpcoming,
			Title:     "Professional Development Workshop",
			Date:      "2027-10-15",
			Time:      "9:00 AM",
			Venue:     "Main Auditorium",
			Organizer: entity.Name,
		},
	}
	for _, e := range events {
		e.ID = uuid.NewString()
		e.EntityKind = entity.Kind
		e.EntityID = entity.ID
		if _, err := queries.CreateEvent(ctx, e); err != nil {
			return err
		}
	}

	achievements := []model.Achievement{
		{Title: "Outstanding Chapter Award 2024", Date: "2024-12-01", AwardedBy: "IEEE Region 10", Recipient: entity.Name},
		{Title: "Best Student Chapter - Regional Level", Date: "2023-08-15", Recipient: entity.Name},
	}
	for _, a := range achievements {
		a.EntityKind = entity.Kind
		a.EntityID = entity.ID
		if _, err := queries.CreateAchievement(ctx, a); err != nil {
			return err
		}
	}

	return nil
}
