package agent

import "github.com/rohinthram/sanskrita-saarathi/internal/schema"

// The learning-domain tables. Timestamps are stored as text: the agents
// write human-readable "YYYY-MM-DD HH:MM:SS" strings they obtain from the
// curr_datetime tool.

// GlossaryTable holds Sanskrit words with their English meanings.
func GlossaryTable() schema.Table {
	return schema.Table{
		Name: "Glossary",
		Columns: []schema.Column{
			{Name: "id", Type: schema.Integer, Identity: true},
			{Name: "sanskrit_word", Type: schema.Text, Nullable: true},
			{Name: "english_meaning", Type: schema.Text, Nullable: true},
			{Name: "added_on", Type: schema.Text, Nullable: true},
			{Name: "input_sentence", Type: schema.Text, Nullable: true},
		},
	}
}

// QuizStatsTable holds one row per quiz session.
func QuizStatsTable() schema.Table {
	return schema.Table{
		Name: "QuizStats",
		Columns: []schema.Column{
			{Name: "id", Type: schema.Integer, Identity: true},
			{Name: "quiz_id", Type: schema.Integer, Nullable: true},
			{Name: "username", Type: schema.Text, Nullable: true},
			{Name: "taken_on", Type: schema.Text, Nullable: true},
			{Name: "score", Type: schema.Integer, Nullable: true},
			{Name: "total_score", Type: schema.Integer, Nullable: true},
		},
	}
}

// QuizResultsTable holds one row per answered quiz question.
func QuizResultsTable() schema.Table {
	return schema.Table{
		Name: "QuizResults",
		Columns: []schema.Column{
			{Name: "id", Type: schema.Integer, Identity: true},
			{Name: "quiz_id", Type: schema.Integer, Nullable: true},
			{Name: "question", Type: schema.Text, Nullable: true},
			{Name: "user_answer", Type: schema.Text, Nullable: true},
			{Name: "correct_answer", Type: schema.Text, Nullable: true},
			{Name: "is_correct", Type: schema.Boolean, Nullable: true},
		},
	}
}

// Registry assembles the schema registry for the learning database.
func Registry() (*schema.Registry, error) {
	return schema.NewRegistry(GlossaryTable(), QuizStatsTable(), QuizResultsTable())
}
