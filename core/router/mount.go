package router

import (
	"fmt"
	"slices"
)

// Mount copies every route of child into rt under rt's prefix. Chains are
// composed so that the parent's before-stages wrap the child's and the
// child's after and finally stages unwind before the parent's:
//
//	before  = parent.before ++ route.before
//	after   = route.after ++ parent.after
//	finally = route.finally ++ parent.finally
//
// The parent chains used are the ones registered on rt at the time of the
// call. The child is not referenced afterwards; later changes to it are not
// visible through rt.
func (rt *Router) Mount(child *Router) *Router {
	rt.checkOpen()
	if child == nil {
		panic(fmt.Errorf("%w passed to Mount", ErrNilRouter))
	}
	if child == rt {
		panic(ErrSelfMount)
	}

	for _, method := range child.methods {
		for _, r := range child.tables[method].order {
			m, err := Compile(Join(rt.prefix, r.matcher.Pattern()))
			if err != nil {
				panic(fmt.Errorf("mount under '%s': %w", rt.prefix, err))
			}

			rt.insert(&route{
				method:  method,
				matcher: m,
				handler: r.handler,
				before:  slices.Concat(rt.before, r.before),
				after:   slices.Concat(r.after, rt.after),
				finally: slices.Concat(r.finally, rt.finally),
			})
		}
	}
	return rt
}
