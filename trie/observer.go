package trie

import "github.com/ethereum/go-ethereum/log"

// changeObserver tallies the structural rewrites (split, explode, compact)
// a single Add/Delete call triggers and emits them as one debug-level log
// record. A nil receiver is always a no-op; New always installs an
// observer, logging to log.Root() unless WithLogger supplies a logger.
type changeObserver struct {
	logger   log.Logger
	splits   int
	explodes int
	compacts int
}

func newChangeObserver(logger log.Logger) *changeObserver {
	return &changeObserver{logger: logger}
}

func (o *changeObserver) onSplit() {
	if o == nil {
		return
	}
	o.splits++
}

func (o *changeObserver) onExplode() {
	if o == nil {
		return
	}
	o.explodes++
}

func (o *changeObserver) onCompact() {
	if o == nil {
		return
	}
	o.compacts++
}

// flush emits the tallied rewrites under op (e.g. "add", "delete") and
// resets the counters. Nothing is logged when nothing happened this
// operation or when there is no logger; the counters are reset either way.
func (o *changeObserver) flush(op string) {
	if o == nil {
		return
	}
	if o.logger != nil && (o.splits != 0 || o.explodes != 0 || o.compacts != 0) {
		o.logger.Debug("trie structural rewrite", "op", op, "splits", o.splits, "explodes", o.explodes, "compacts", o.compacts)
	}
	o.splits, o.explodes, o.compacts = 0, 0, 0
}
