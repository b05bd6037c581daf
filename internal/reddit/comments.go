package reddit

import (
	"go-reddit-radar/internal/config"
	"go-reddit-radar/internal/model"
)

// WalkCommentTree 把任意深度的回复树展开为前序扁平序列：
// 父在子前，兄弟保持端点返回顺序。深度不设上限，
// 用显式栈代替递归，深楼层不会打爆调用栈。
// 时间窗过滤对每条评论独立生效；窗口外评论的子回复照常下探。
func WalkCommentTree(roots []thing, postID, subreddit string, window config.Window) []model.Comment {
	var out []model.Comment
	stack := make([]thing, 0, len(roots))
	// 前序遍历：入栈时倒序，出栈即为原始顺序
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Kind != kindComment {
			// 非评论节点（more 占位符等）不收录也不下探
			continue
		}
		d := &node.Data
		if body := d.commentBody(); body != "" && body != "[removed]" && body != "[deleted]" {
			if window.Contains(d.createdAt()) {
				out = append(out, d.toComment(postID, subreddit))
			}
		}
		children := d.replyChildren()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}
