package authz

// HasAny 判断持有权限中是否命中任意一个要求的权限。
// 不要求任何权限时视为放行；未持有任何权限时一律拒绝。
func HasAny(held []string, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	if len(held) == 0 {
		return false
	}
	heldSet := make(map[string]struct{}, len(held))
	for _, code := range held {
		if code == "" {
			continue
		}
		heldSet[code] = struct{}{}
	}
	for _, code := range required {
		if _, ok := heldSet[code]; ok {
			return true
		}
	}
	return false
}
