package idem

import (
	"context"
	"encoding/json"

	"github.com/ceyewan/azulpay/xerrors"
)

// Call 类型化的幂等调用
//
// 对 Guard.Execute 的泛型包装：无论结果来自本次执行还是缓存，
// 都从同一份序列化字节反序列化，所以所有调用方观察到的输出一致。
//
// 使用示例：
//
//	response, err := idem.Call(ctx, guard, "process-challenge:"+secureID, body,
//	    func(ctx context.Context, body gateway.ChallengeBody) (*gateway.Response, error) {
//	        return requester.ProcessChallenge(ctx, body)
//	    })
func Call[In, Out any](ctx context.Context, g Guard, key string, input In, fn func(ctx context.Context, input In) (Out, error), opts ...ExecuteOption) (Out, error) {
	var out Out

	raw, err := g.Execute(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx, input)
	}, opts...)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, xerrors.Wrap(err, "idem: failed to unmarshal cached result")
	}
	return out, nil
}
