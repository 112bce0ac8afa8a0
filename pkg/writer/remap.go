package writer

import "github.com/yaklabco/gosmap/pkg/sourcemap"

// remapper translates source and name indices of an upstream map into a
// target table, adding entries the first time they are seen.
type remapper struct {
	upstream *sourcemap.Table
	target   *sourcemap.Table
	sources  map[uint32]int
	names    map[uint32]int
}

func newRemapper(upstream, target *sourcemap.Table) *remapper {
	return &remapper{
		upstream: upstream,
		target:   target,
		sources:  make(map[uint32]int),
		names:    make(map[uint32]int),
	}
}

func (r *remapper) source(idx uint32) int {
	if local, ok := r.sources[idx]; ok {
		return local
	}
	path := ""
	if sources := r.upstream.Sources(); int(idx) < len(sources) {
		path = sources[idx]
	}
	local := r.target.AddSource(path)
	if content, ok := r.upstream.SourceContent(path); ok {
		if _, has := r.target.SourceContent(path); !has {
			r.target.SetSourceContent(path, content)
		}
	}
	r.sources[idx] = local
	return local
}

func (r *remapper) name(idx uint32) int {
	if local, ok := r.names[idx]; ok {
		return local
	}
	name := ""
	if names := r.upstream.Names(); int(idx) < len(names) {
		name = names[idx]
	}
	local := r.target.AddName(name)
	r.names[idx] = local
	return local
}
