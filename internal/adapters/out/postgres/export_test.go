package postgres

import "time"

func (f *GormUnitOfWorkFactory) SetPublishTimeout(timeout time.Duration) {
	f.publishTimeout = timeout
}
