package main

import (
	"github.com/pkg/errors"
)

// seed loads a starter catalog so a fresh install has something to
// browse. Each table is only seeded when empty.
func (cli *commandLine) seed() error {
	if err := cli.seedTable("college", `
INSERT INTO college (name, location, stream, state, rating, budget_range, budget_value, apply_link)
VALUES ('IIT Delhi', 'New Delhi', 'engineering', 'Delhi', 4.8, '2-3 Lakhs/year', 250000, 'https://home.iitd.ac.in'),
       ('IIT Bombay', 'Mumbai', 'engineering', 'Maharashtra', 4.9, '2-3 Lakhs/year', 250000, 'https://www.iitb.ac.in'),
       ('AIIMS Delhi', 'New Delhi', 'medical', 'Delhi', 4.9, '1-2 Lakhs/year', 150000, 'https://www.aiims.edu'),
       ('NIT Trichy', 'Tiruchirappalli', 'engineering', 'Tamil Nadu', 4.6, '1-2 Lakhs/year', 180000, 'https://www.nitt.edu'),
       ('St. Stephens College', 'New Delhi', 'arts', 'Delhi', 4.5, 'Under 1 Lakh/year', 60000, 'https://www.ststephens.edu'),
       ('Christ University', 'Bengaluru', 'commerce', 'Karnataka', 4.3, '1-2 Lakhs/year', 160000, 'https://christuniversity.in')`,
	); err != nil {
		return errors.Wrap(err, "seeding colleges")
	}

	if err := cli.seedTable("mentor", `
INSERT INTO mentor (name, college, specialization, bio, rating, sessions_completed)
VALUES ('Priya Sharma', 'IIT Delhi', 'Computer Science', 'Final-year CSE student, helps with JEE preparation and branch selection.', 4.9, 128),
       ('Arjun Mehta', 'AIIMS Delhi', 'Medicine', 'MBBS student, NEET mentor for three years.', 4.8, 95),
       ('Sneha Iyer', 'St. Stephens College', 'Economics', 'Economics honours, guides humanities aspirants through cut-offs and entrances.', 4.7, 54)`,
	); err != nil {
		return errors.Wrap(err, "seeding mentors")
	}

	if err := cli.seedTable("scholarship", `
INSERT INTO scholarship (name, category, eligibility, amount, last_date, link)
VALUES ('National Scholarship Portal Merit Scheme', 'merit', 'Class 12 with 80%+ marks, family income under 8 LPA', 'Up to 20,000/year', '2026-10-31', 'https://scholarships.gov.in'),
       ('Post Matric Scholarship', 'need-based', 'SC/ST/OBC students enrolled in recognized institutions', 'Full tuition', '2026-11-15', 'https://scholarships.gov.in'),
       ('INSPIRE Scholarship', 'merit', 'Top 1% in Class 12 boards pursuing basic sciences', '80,000/year', '2026-12-01', 'https://online-inspire.gov.in')`,
	); err != nil {
		return errors.Wrap(err, "seeding scholarships")
	}
	return nil
}

func (cli *commandLine) seedTable(table, insert string) error {
	var count int
	if err := cli.db.Get(&count, `SELECT COUNT(*) FROM `+table); err != nil {
		return err
	}
	if count > 0 {
		logger.Printf("%s already seeded, skipping", table)
		return nil
	}
	_, err := cli.db.Exec(insert)
	return err
}
