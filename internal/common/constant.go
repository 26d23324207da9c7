package common

// MaxFileSizeBytes is the per-file upload ceiling (100 MiB).
const MaxFileSizeBytes int64 = 100 * 1024 * 1024

// StorageQuotaBytes is the fixed per-account storage cap (10 GiB).
const StorageQuotaBytes int64 = 10 * 1024 * 1024 * 1024

// UploadReward is the number of points awarded per committed upload.
const UploadReward int64 = 10
