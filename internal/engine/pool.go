package engine

import "sync"

// sparkPool recycles sparks, which are born fifty at a time and die within
// about a second.
type sparkPool struct {
	pool sync.Pool
}

func newSparkPool() *sparkPool {
	return &sparkPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(Spark)
			},
		},
	}
}

func (p *sparkPool) Get() *Spark {
	return p.pool.Get().(*Spark)
}

func (p *sparkPool) Put(s *Spark) {
	*s = Spark{}
	p.pool.Put(s)
}
