package workerpool

func (p *workerPool) observeActive(active int64) {
	if p.config.Metrics == nil {
		return
	}
	p.config.Metrics.WorkerPoolActive.WithLabelValues(p.config.Name).Set(float64(active))
}

func (p *workerPool) observeResult(r Result) {
	if p.config.Metrics == nil {
		return
	}
	status := "ok"
	if r.Error != nil {
		status = "error"
	}
	p.config.Metrics.WorkerTasks.WithLabelValues(p.config.Name, status).Inc()
}
