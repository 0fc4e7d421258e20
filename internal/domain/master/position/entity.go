package position

import "time"

type Level string

const (
	LevelJunior      Level = "junior"
	LevelPleno       Level = "pleno"
	LevelSenior      Level = "senior"
	LevelCoordenador Level = "coordenador"
	LevelGerente     Level = "gerente"
)

// Position is a job title employees are hired into.
type Position struct {
	ID          string
	Name        string
	Description string
	Level       Level
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
