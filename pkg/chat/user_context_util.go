package chat

import "context"

type contextKey string

const userKey contextKey = "chatUser"

// HeaderUser names the request header carrying the chat user id.
const HeaderUser = "X-Chat-User"

const AnonymousUser = "anonymous"

// CurrentUser returns the chat user stored in ctx, or AnonymousUser.
func CurrentUser(ctx context.Context) string {
	userId, ok := ctx.Value(userKey).(string)
	if !ok || userId == "" {
		return AnonymousUser
	}
	return userId
}

func WithUser(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userKey, userId)
}
