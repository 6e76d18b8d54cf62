package texec

// Exec is what a worker sees while running a task's Apply: which team the
// task runs in, the team-shared scratch buffer, and the barrier. Single
// tasks get TeamSize()==1, a private zero-length scratch slice, and a
// NoopBarrier.
type Exec struct {
	groupRank int
	teamRank  int
	teamSize  int
	scratch   []byte
	barrier   Barrier
}

// NewSingle builds the Exec for a Single task running on one worker.
func NewSingle(groupRank int) *Exec {
	return &Exec{
		groupRank: groupRank,
		teamRank:  0,
		teamSize:  1,
		barrier:   NoopBarrier{},
	}
}

// NewTeamMember builds the Exec for one member of a Team task's crew. All
// members of the same team share the same scratch slice and barrier
// instance.
func NewTeamMember(groupRank, teamRank, teamSize int, scratch []byte, barrier Barrier) *Exec {
	return &Exec{
		groupRank: groupRank,
		teamRank:  teamRank,
		teamSize:  teamSize,
		scratch:   scratch,
		barrier:   barrier,
	}
}

// GroupRank identifies the worker slot driving this task, independent of
// team membership.
func (e *Exec) GroupRank() int { return e.groupRank }

// TeamRank is this worker's rank within its team (0..TeamSize-1).
func (e *Exec) TeamRank() int { return e.teamRank }

// TeamSize is the number of workers cooperating on this task (1 for Single).
func (e *Exec) TeamSize() int { return e.teamSize }

// Scratch is the team-shared scratch buffer. Mutable by team workers only;
// external access (outside the team running this task) is undefined.
func (e *Exec) Scratch() []byte { return e.scratch }

// Barrier returns this task's team barrier (NoopBarrier for Single tasks).
func (e *Exec) Barrier() Barrier { return e.barrier }
