package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/config"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	pg "github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/db/postgres"
)

// Seeds one editor with a few pending assessments so the worker has
// something to chew on locally.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()

	editorRepo := pg.NewPostgresEditorRepo(pool)
	assessmentRepo := pg.NewPostgresAssessmentRepo(pool)

	editor, err := model.NewEditor(uuid.NewString())
	if err != nil {
		log.Fatalf("new editor: %v", err)
	}
	if err := editorRepo.Save(ctx, nil, editor); err != nil {
		log.Fatalf("save editor: %v", err)
	}
	fmt.Printf("seeded editor: %s\n", editor.ID)

	videos := []string{
		"https://samples.ryvx.dev/portfolio/cut-01.mp4",
		"https://samples.ryvx.dev/portfolio/cut-02.mp4",
		"https://samples.ryvx.dev/portfolio/cut-03.mp4",
	}
	for _, url := range videos {
		a, err := model.NewAssessment(uuid.NewString(), editor.ID, url)
		if err != nil {
			log.Fatalf("new assessment: %v", err)
		}
		if err := assessmentRepo.Save(ctx, nil, a); err != nil {
			log.Fatalf("save assessment: %v", err)
		}
		fmt.Printf("seeded assessment: %s (%s)\n", a.ID, url)
	}

	fmt.Println("seeding complete")
}
