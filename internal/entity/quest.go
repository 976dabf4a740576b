package entity

// Objective is one countable goal of a quest.
type Objective struct {
	Description string
	Target      string // Enemy kind or item id that advances the objective
	Amount      int
	Current     int
}

// Done reports whether the objective has reached its amount.
func (o Objective) Done() bool {
	return o.Current >= o.Amount
}

// Rewards are granted when a quest completes.
type Rewards struct {
	Gold  int
	Items []string
}

// Quest is a task handed out by an NPC.
type Quest struct {
	ID          string
	Title       string
	Description string
	GiverID     string
	Objectives  []Objective
	Rewards     Rewards
	Completed   bool
}

// NewQuest creates a quest with no objectives.
func NewQuest(id, title, description, giverID string) *Quest {
	return &Quest{
		ID:          id,
		Title:       title,
		Description: description,
		GiverID:     giverID,
	}
}

// AddObjective appends an objective. Amounts below one count as one.
func (q *Quest) AddObjective(description, target string, amount int) {
	if amount < 1 {
		amount = 1
	}
	q.Objectives = append(q.Objectives, Objective{
		Description: description,
		Target:      target,
		Amount:      amount,
	})
}

// UpdateProgress advances every objective aimed at target by n, capped at
// the objective's amount. It reports whether any objective matched. The
// quest completes once every objective is done.
func (q *Quest) UpdateProgress(target string, n int) bool {
	if q.Completed || n <= 0 {
		return false
	}
	matched := false
	for i := range q.Objectives {
		o := &q.Objectives[i]
		if o.Target != target {
			continue
		}
		matched = true
		o.Current = min(o.Amount, o.Current+n)
	}
	if matched {
		q.Completed = q.allDone()
	}
	return matched
}

func (q *Quest) allDone() bool {
	for _, o := range q.Objectives {
		if !o.Done() {
			return false
		}
	}
	return len(q.Objectives) > 0
}
